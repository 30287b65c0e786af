package app

import (
	"errors"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/shared/connection"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds process configuration read from the environment.
type Config struct {
	Port         string        `envconfig:"PORT" default:"3000"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"go_payroll"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBRetries  int    `envconfig:"DB_RETRIES" default:"5"`

	RedisAddr   string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	KafkaBroker string `envconfig:"KAFKA_BROKER"`
	JWTSecret   string `envconfig:"JWT_SECRET"`

	RBACModelPath string `envconfig:"RBAC_MODEL_PATH" default:"internal/rbac/infra/model.conf"`

	PayrollConfigPath    string        `envconfig:"PAYROLL_CONFIG_PATH"`
	PayrollWorkers       int           `envconfig:"PAYROLL_WORKERS" default:"8"`
	PayrollLockTTL       time.Duration `envconfig:"PAYROLL_LOCK_TTL" default:"2m"`
	PayrollLockRetries   int           `envconfig:"PAYROLL_LOCK_RETRIES" default:"3"`
	OutboxPollInterval   time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"3s"`
	OutboxBatchSize      int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	PayslipConsumerGroup string        `envconfig:"PAYSLIP_CONSUMER_GROUP" default:"go-payroll-payslip"`

	AttendanceDailyMinutes     int    `envconfig:"ATTENDANCE_DAILY_MINUTES" default:"480"`
	AttendanceAbsenceDeduction string `envconfig:"ATTENDANCE_ABSENCE_DEDUCTION" default:"0"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.PayrollWorkers < 1 {
		return nil, errors.New("PAYROLL_WORKERS must be at least 1")
	}
	if cfg.AttendanceDailyMinutes < 1 {
		return nil, errors.New("ATTENDANCE_DAILY_MINUTES must be at least 1")
	}
	if _, err := decimal.NewFromString(cfg.AttendanceAbsenceDeduction); err != nil {
		return nil, errors.New("ATTENDANCE_ABSENCE_DEDUCTION must be a decimal amount")
	}
	return &cfg, nil
}

// RequireAPI checks the settings only the HTTP server needs.
func (c *Config) RequireAPI() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// RequireKafka checks the settings the outbox worker and consumers need.
func (c *Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}

// AttendanceSchedule builds the working schedule the attendance source uses.
func (c *Config) AttendanceSchedule() attendance.Schedule {
	deduction, _ := decimal.NewFromString(c.AttendanceAbsenceDeduction)
	return attendance.Schedule{
		DailyMinutes:           c.AttendanceDailyMinutes,
		AbsenceDeductionPerDay: deduction,
	}
}

func (c *Config) PostgresDSN() string {
	return connection.PostgresDSN(c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
