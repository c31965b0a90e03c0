package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/audit"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/config"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/handlers"
	infraRepo "github.com/Pranaysalavadhi/medic-connect-online/internal/infra/repository"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/middleware"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/notify"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/routegate"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/session"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/storage"
	ucAppointment "github.com/Pranaysalavadhi/medic-connect-online/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessions := session.NewStore(rdb, 24*time.Hour)
	recordStore := storage.NewRecordStoreFromConfig(cfg)
	guardTable := routegate.Default()

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifier := notify.NewLogNotifier()

	loginLimiter := middleware.NewRateLimiter(5, 10)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		notifier,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		notifier,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
		cfg.ClinicTimezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions, auditDispatcher)
	meHandler := handlers.NewMeHandler(db, cfg.ClinicTimezone)
	doctorHandler := handlers.NewDoctorHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		listAppointmentsUC,
	)

	recordHandler := handlers.NewRecordHandler(db, recordStore, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id", doctorHandler.Get)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", middleware.RateLimit(loginLimiter), authHandler.Register)
		api.POST("/auth/login", middleware.RateLimit(loginLimiter), authHandler.Login)

		// ------------------------------
		// PRIVATE (session + route guard)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		secured.Use(middleware.Guard(guardTable))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/dashboard", meHandler.Dashboard)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.UpdateStatus)

			// ------------------------------
			// HEALTH RECORDS (patients only, per guard table)
			// ------------------------------
			secured.GET("/records", recordHandler.List)
			secured.POST("/records", recordHandler.Upload)
			secured.DELETE("/records/:id", recordHandler.Delete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
