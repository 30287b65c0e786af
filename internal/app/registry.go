package app

import (
	"database/sql"
	"go-payroll/internal/attendance"
	"go-payroll/internal/compensation"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/counter"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// modules holds the services the API, worker and consumer processes share.
type modules struct {
	rbacService         rbac.Service
	compensationService compensation.Service
	attendanceService   attendance.Service
	payrollService      payroll.Service
	payrollAuthorizer   *rbac.PayrollAuthorizer
}

func buildModules(
	cfg *Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (*modules, error) {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	payrollAuthorizer := rbac.NewPayrollAuthorizer(rbacService)

	// --- Payroll inputs ---
	configs, err := payroll.LoadConfigStore(cfg.PayrollConfigPath)
	if err != nil {
		return nil, err
	}
	compensationSource := compensation.NewSource(compensationRepo)
	attendanceSource := attendance.NewSource(attendanceRepo, cfg.AttendanceSchedule(), time.Now)

	var locker payroll.RunLocker
	if rdb != nil {
		locker = payroll.NewRedisLocker(rdb, cfg.PayrollLockTTL, cfg.PayrollLockRetries)
	}

	// --- Services ---
	return &modules{
		rbacService:         rbacService,
		compensationService: compensation.NewService(db, compensationRepo),
		attendanceService:   attendance.NewService(db, attendanceRepo, attendanceSource, time.Now),
		payrollService: payroll.NewService(db, payrollRepo, payroll.Dependencies{
			Compensation: compensationSource,
			Attendance:   attendanceSource,
			Baselines:    payrollRepo,
			Configs:      configs,
			Authorizer:   payrollAuthorizer,
			Locker:       locker,
			Counter:      counterRepo,
			Outbox:       outboxRepo,
			Redis:        rdb,
			Workers:      cfg.PayrollWorkers,
		}),
		payrollAuthorizer: payrollAuthorizer,
	}, nil
}

func registerModules(
	router *gin.Engine,
	cfg *Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	m, err := buildModules(cfg, db, gormDB, rdb)
	if err != nil {
		return err
	}

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(m.attendanceService)
	compensationHandler := compensation.NewHandler(m.compensationService)
	payrollHandler := payroll.NewHandlerWithRedis(m.payrollService, rdb)
	rbacHandler := rbac.NewHandler(m.payrollAuthorizer)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, m.rbacService)
		compensation.RegisterRoutes(api, compensationHandler, m.rbacService)
		payroll.RegisterRoutes(api, payrollHandler, m.rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
