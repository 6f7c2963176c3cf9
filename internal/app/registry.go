package app

import (
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/checkin"
	"go-payroll/internal/client"
	"go-payroll/internal/compensation"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/project"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	workerRepo := worker.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	configRepo := compensation.NewConfigRepository(gormDB)
	loanRepo := compensation.NewLoanRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	settingsResolver := timesheet.NewSettingsResolver(projectRepo, clientRepo, logger)
	auditLogger := bootstrap.NewStdoutAuditLogger()

	workerService := worker.NewService(db, workerRepo)
	clientService := client.NewService(db, clientRepo, rdb)
	projectService := project.NewService(db, projectRepo)
	attendanceService := attendance.NewService(attendanceRepo)
	timesheetService := timesheet.NewService(db, timesheetRepo, workerRepo, settingsResolver, logger)
	checkinService := checkin.NewService(db, workerRepo, attendanceRepo, timesheetRepo, settingsResolver, outboxRepo, logger)
	compensationService := compensation.NewService(db, configRepo, loanRepo)
	payrollService := payroll.NewService(
		db, payroll.NewRepository(gormDB),
		workerRepo, timesheetRepo, configRepo, loanRepo,
		counterRepo, outboxRepo, auditLogger, logger,
	)

	presenceBoard := checkin.NewPresenceBoard(rdb)

	// --- Handlers ---
	workerHandler := worker.NewHandler(workerService)
	clientHandler := client.NewHandler(clientService)
	projectHandler := project.NewHandler(projectService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	checkinHandler := checkin.NewHandler(checkinService, presenceBoard)
	compensationHandler := compensation.NewHandler(compensationService)
	payrollHandler := payroll.NewHandler(payrollService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))

	api := router.Group("/api/v1")
	{
		worker.RegisterRoutes(api, workerHandler, rbacService)
		client.RegisterRoutes(api, clientHandler, rbacService)
		project.RegisterRoutes(api, projectHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
		checkin.RegisterRoutes(api, checkinHandler, rbacService, rdb)
		compensation.RegisterRoutes(api, compensationHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
