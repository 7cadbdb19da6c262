package routes

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/controllers"
	"hr-system/internal/events"
	"hr-system/internal/integrations/ocr"
	"hr-system/internal/listeners"
	"hr-system/internal/repositories"
	"hr-system/internal/services"
	"hr-system/pkg/config"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/mailer"
	"hr-system/pkg/middleware"
	"hr-system/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route under /api.
func InitRouter(
	ctx context.Context,
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	apiGroup := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	bus := eventbus.New(logger)

	// repositories
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)
	referenceRepo := repositories.NewReferenceRepository(dbConn, logger)
	auditRepo := repositories.NewAuditRepository(dbConn, logger)
	reminderRepo := repositories.NewReminderRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// services
	referenceService := services.NewReferenceService(referenceRepo, cacheRepo, logger)
	employeeService := services.NewEmployeeService(employeeRepo, bus, logger)
	importer := services.NewEmployeeImporter(employeeRepo, referenceService, bus, logger)
	dashboardService := services.NewDashboardService(employeeRepo, cacheRepo, logger)
	auditService := services.NewAuditService(auditRepo, logger)
	reminderService := services.NewReminderService(
		employeeRepo, reminderRepo, mailer.New(cfg.SMTP), cfg.Reminder, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)

	// listeners and background jobs
	listeners.NewAuditListener(auditRepo, logger).Register(bus)
	invalidateDashboard := func(ctx context.Context, _ eventbus.Event) error {
		dashboardService.Invalidate(ctx)
		return nil
	}
	bus.Subscribe(events.EmployeeCreatedName, invalidateDashboard)
	bus.Subscribe(events.EmployeeUpdatedName, invalidateDashboard)
	bus.Subscribe(events.EmployeeDeletedName, invalidateDashboard)
	reminderService.StartScheduler(ctx)

	// controllers
	authController := controllers.NewAuthController(authService, logger)
	employeeController := controllers.NewEmployeeController(employeeService, logger)
	referenceController := controllers.NewReferenceController(referenceService, logger)
	importController := controllers.NewImportController(importer, employeeService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	auditController := controllers.NewAuditController(auditService, logger)
	reminderController := controllers.NewReminderController(reminderService, logger)
	scanController := controllers.NewScanController(ocr.NewUnavailableProvider(), logger)

	// public
	apiGroup.POST("/auth/login", authController.Login)
	apiGroup.POST("/auth/refresh", authController.Refresh)

	// everything below requires a valid access token
	secured := apiGroup.Group("", authMW.Auth)

	secured.GET("/employees", employeeController.GetEmployees)
	secured.POST("/employees", employeeController.CreateEmployee)
	secured.GET("/employee/:id", employeeController.FindEmployee)
	secured.PUT("/employee/:id", employeeController.UpdateEmployee)
	secured.DELETE("/employee/:id", employeeController.DeleteEmployee)

	secured.GET("/employees/import/template", importController.Template)
	secured.POST("/employees/import/preview", importController.Preview)
	secured.POST("/employees/import", importController.Commit)
	secured.GET("/employees/export", importController.Export)

	secured.GET("/references/:kind", referenceController.GetReferences)
	secured.POST("/references/:kind", referenceController.CreateReference)
	secured.GET("/references/:kind/:id", referenceController.FindReference)
	secured.PUT("/references/:kind/:id", referenceController.UpdateReference)
	secured.DELETE("/references/:kind/:id", referenceController.DeleteReference)

	secured.GET("/dashboard", dashboardController.GetDashboard)
	secured.GET("/audit", auditController.GetActivityLog)

	secured.GET("/reminders", reminderController.GetReminders)
	secured.POST("/reminders/run", reminderController.RunReminders)

	secured.POST("/documents/scan", scanController.Scan)

	logger.Info("router initialized")
}
