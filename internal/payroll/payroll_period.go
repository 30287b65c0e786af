package payroll

import (
	"fmt"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
)

// Period is a pay period with inclusive start and end dates in UTC.
type Period struct {
	Year  int        `gorm:"column:period_year;not null" json:"year"`
	Month time.Month `gorm:"column:period_month;not null" json:"month"`
	Start time.Time  `gorm:"column:period_start;type:date;not null" json:"start"`
	End   time.Time  `gorm:"column:period_end;type:date;not null" json:"end"`
}

// NewMonthlyPeriod covers the whole calendar month.
func NewMonthlyPeriod(year int, month time.Month) (Period, error) {
	if year < 1 || month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: %04d-%02d", payrollerrors.ErrInvalidPeriod, year, int(month))
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Year:  year,
		Month: month,
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}, nil
}

// NewPeriod builds a period with explicit bounds, e.g. an off-cycle window.
func NewPeriod(year int, month time.Month, start, end time.Time) (Period, error) {
	p := Period{Year: year, Month: month, Start: dateOf(start), End: dateOf(end)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.Year < 1 || p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("%w: %04d-%02d", payrollerrors.ErrInvalidPeriod, p.Year, int(p.Month))
	}
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", payrollerrors.ErrInvalidPeriod)
	}
	if dateOf(p.Start).After(dateOf(p.End)) {
		return fmt.Errorf("%w: start %s is after end %s", payrollerrors.ErrInvalidPeriod, p.Start.Format(dateLayout), p.End.Format(dateLayout))
	}
	return nil
}

// Days counts calendar days, both ends included.
func (p Period) Days() int {
	return daysInclusive(p.Start, p.End)
}

func (p Period) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(dateOf(p.Start)) && !d.After(dateOf(p.End))
}

func (p Period) Key() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(dateLayout), p.End.Format(dateLayout))
}

const dateLayout = "2006-01-02"

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInclusive(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours()/24) + 1
}
