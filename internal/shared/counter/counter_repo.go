package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments and returns the company's counter in one upsert,
// starting at 1. Numbers consumed by a rolled back caller are not reused.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, fmt.Errorf("next %s counter: %w", counterType, err)
	}
	return nextValue, nil
}

// ScopedType keys a counter per scope, so each scope restarts at 1.
func ScopedType(counterType, scope string) string {
	if scope == "" {
		return counterType
	}
	return counterType + ":" + scope
}

// FormatNumber renders PREFIX-SCOPE-000042.
func FormatNumber(prefix, scope string, seq int64) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, scope, seq)
}
