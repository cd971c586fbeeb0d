package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/giovanabeautify/salon-scheduler/internal/audit"
	"github.com/giovanabeautify/salon-scheduler/internal/catalog"
	"github.com/giovanabeautify/salon-scheduler/internal/config"
	"github.com/giovanabeautify/salon-scheduler/internal/gallery"
	"github.com/giovanabeautify/salon-scheduler/internal/handlers"
	infraRepo "github.com/giovanabeautify/salon-scheduler/internal/infra/repository"
	"github.com/giovanabeautify/salon-scheduler/internal/middleware"
	"github.com/giovanabeautify/salon-scheduler/internal/realtime"
	ucAppointment "github.com/giovanabeautify/salon-scheduler/internal/usecase/appointment"
	ucCatalog "github.com/giovanabeautify/salon-scheduler/internal/usecase/catalog"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	uploader *gallery.Uploader,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	cat := catalog.New(appointmentRepo)

	hub := realtime.NewHub()
	notifier := realtime.NewNotifier(hub, appointmentRepo, rdb)
	appointmentRepo.OnChange(notifier.Changed)
	go notifier.Run(context.Background())

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		cat,
		cfg.PixKey,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	editUC := ucAppointment.NewEditAppointment(
		appointmentRepo,
		cat,
		cfg.PixKey,
		auditDispatcher,
	)

	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	rescheduleUC := ucAppointment.NewRescheduleRequest(
		appointmentRepo,
		auditDispatcher,
	)

	historyUC := ucAppointment.NewClientHistory(appointmentRepo)

	addServiceUC := ucCatalog.NewAddService(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		editUC,
		listUC,
		rescheduleUC,
		hub,
	)

	catalogHandler := handlers.NewCatalogHandler(cat, addServiceUC)
	historyHandler := handlers.NewHistoryHandler(historyUC)
	paymentHandler := handlers.NewPaymentHandler(cfg)
	galleryHandler := handlers.NewGalleryHandler(db, uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO
		// ------------------------------
		api.GET("/services", catalogHandler.List)
		api.GET("/gallery", galleryHandler.List)

		api.POST("/auth/session", authHandler.Session)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTENTICADO (cliente ou admin)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/payment/pix", paymentHandler.PixInfo)

			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/stream", appointmentHandler.Stream)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/reschedule-request", appointmentHandler.RescheduleRequest)

			// ------------------------------
			// PAINEL (admin)
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.PUT("/appointments/:id", appointmentHandler.Edit)
				admin.GET("/history", historyHandler.List)
				admin.POST("/services", catalogHandler.Add)
				admin.POST("/gallery", galleryHandler.Upload)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
