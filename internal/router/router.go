package router

import (
	"time"

	"github.com/abhishek972986/porter-managment/internal/config"
	"github.com/abhishek972986/porter-managment/internal/handler"
	"github.com/abhishek972986/porter-managment/internal/infra"
	"github.com/abhishek972986/porter-managment/internal/middleware"
	"github.com/abhishek972986/porter-managment/internal/policy"
	"github.com/abhishek972986/porter-managment/internal/repository"
	"github.com/abhishek972986/porter-managment/internal/service"
	"github.com/abhishek972986/porter-managment/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, renderer service.PDFRenderer, pdfCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	porterRepo := repository.NewPorterRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	carrierRepo := repository.NewCarrierRepository(db)
	costRepo := repository.NewCommuteCostRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Activity rows are queued on Redis and persisted by the worker pool.
	dispatcher := worker.NewDispatcher(rdb)
	activitySvc := service.NewActivityService(activityRepo, userRepo, dispatcher)
	views := service.NewReadModels(porterRepo, locationRepo, carrierRepo, userRepo)

	authSvc := service.NewAuthService(userRepo, infra.NewRedisTokenStore(rdb), activitySvc, cfg)
	porterSvc := service.NewPorterService(porterRepo, activitySvc)
	locationSvc := service.NewLocationService(locationRepo, activitySvc)
	carrierSvc := service.NewCarrierService(carrierRepo, activitySvc)
	costSvc := service.NewCommuteCostService(costRepo, locationRepo, carrierRepo, views, activitySvc)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, porterRepo, costSvc, views, activitySvc)
	payrollSvc := service.NewPayrollService(attendanceRepo, porterRepo, paymentRepo, views, activitySvc)
	reportSvc := service.NewReportService(attendanceRepo, views, activitySvc)
	documentSvc := service.NewDocumentService(cfg.DocumentTemplatePath, renderer, pdfCB)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	portersH := handler.NewPortersHandler(porterSvc)
	locationsH := handler.NewLocationsHandler(locationSvc)
	carriersH := handler.NewCarriersHandler(carrierSvc)
	costsH := handler.NewCommuteCostsHandler(costSvc)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	payrollH := handler.NewPayrollHandler(payrollSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	documentsH := handler.NewDocumentsHandler(documentSvc)
	activitiesH := handler.NewActivitiesHandler(activitySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, pdfCB))

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimit), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. Every route names the action it performs; the role
	// table lives in the policy package.
	jwtMW := middleware.JWTAuth(authSvc)
	read := middleware.Authorize(policy.Read)
	p := api.Group("", jwtMW)
	{
		p.POST("/auth/logout", authH.Logout)
		p.GET("/auth/profile", authH.Profile)

		porters := p.Group("/porters")
		{
			porters.GET("", read, portersH.List)
			porters.GET("/:id", read, portersH.Get)
			porters.POST("", middleware.Authorize(policy.PorterWrite), portersH.Create)
			porters.PUT("/:id", middleware.Authorize(policy.PorterWrite), portersH.Update)
			porters.DELETE("/:id", middleware.Authorize(policy.PorterDelete), portersH.Delete)
		}

		locations := p.Group("/locations")
		{
			locations.GET("", read, locationsH.List)
			locations.GET("/:id", read, locationsH.Get)
			locations.POST("", middleware.Authorize(policy.LocationWrite), locationsH.Create)
			locations.PUT("/:id", middleware.Authorize(policy.LocationWrite), locationsH.Update)
			locations.DELETE("/:id", middleware.Authorize(policy.LocationDelete), locationsH.Delete)
		}

		carriers := p.Group("/carriers")
		{
			carriers.GET("", read, carriersH.List)
			carriers.GET("/:id", read, carriersH.Get)
			carriers.POST("", middleware.Authorize(policy.CarrierWrite), carriersH.Create)
			carriers.PUT("/:id", middleware.Authorize(policy.CarrierWrite), carriersH.Update)
			carriers.DELETE("/:id", middleware.Authorize(policy.CarrierDelete), carriersH.Delete)
		}

		costs := p.Group("/commute-costs")
		{
			costs.GET("", read, costsH.List)
			costs.GET("/find", read, costsH.Find)
			costs.GET("/:id", read, costsH.Get)
			costs.POST("", middleware.Authorize(policy.CommuteCostWrite), costsH.Create)
			costs.POST("/upload", middleware.Authorize(policy.CommuteCostImport), costsH.Upload)
			costs.PUT("/:id", middleware.Authorize(policy.CommuteCostWrite), costsH.Update)
			costs.DELETE("/:id", middleware.Authorize(policy.CommuteCostDelete), costsH.Delete)
		}

		attendance := p.Group("/attendance")
		{
			attendance.GET("", read, attendanceH.List)
			attendance.GET("/calendar", read, attendanceH.Calendar)
			attendance.GET("/:id", read, attendanceH.Get)
			attendance.POST("", middleware.Authorize(policy.AttendanceWrite), attendanceH.Create)
			attendance.PUT("/:id", middleware.Authorize(policy.AttendanceWrite), attendanceH.Update)
			attendance.DELETE("/:id", middleware.Authorize(policy.AttendanceDelete), attendanceH.Delete)
		}

		payroll := p.Group("/payroll")
		{
			payroll.GET("", read, payrollH.Monthly)
			payroll.GET("/summary", read, payrollH.Summary)
			payroll.GET("/:porterId", read, payrollH.ForPorter)
			payroll.GET("/:porterId/payslip", read, payrollH.Payslip)
			payroll.PATCH("/:porterId/payment", middleware.Authorize(policy.PayrollPay), payrollH.UpdatePayment)
		}

		reports := p.Group("/reports", read)
		{
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/generate", reportsH.Generate)
			reports.GET("/porter-nominal-roll", reportsH.NominalRoll)
		}

		p.GET("/documents/health", read, documentsH.Health)
		p.POST("/documents/generate-pdf", middleware.Authorize(policy.DocumentGenerate), documentsH.Generate)

		p.GET("/activities", read, activitiesH.Recent)
	}

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
