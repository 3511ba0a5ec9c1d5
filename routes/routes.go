package routes

import (
	"MediSched/cache"
	"MediSched/config"
	"MediSched/controllers"
	"MediSched/handlers"
	"MediSched/middlewares"
	"MediSched/repositories"
	"MediSched/services"
	"MediSched/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	slotRepo := repositories.NewTimeSlotRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	recordRepo := repositories.NewMedicalRecordRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	serviceRepo := repositories.NewServiceRepository(db, cache)
	specialtyRepo := repositories.NewSpecialtyRepository(db, cache)
	notificationRepo := repositories.NewNotificationRepository(db)

	clock := utils.SystemClock{}
	tokens := utils.NewConfirmTokenCodec(utils.GetSymmetricKey())
	mailer := utils.NewSMTPMailer(config.BaseURL)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo)
	slotService := services.NewTimeSlotService(slotRepo, doctorRepo, clock)
	bookingService := services.NewBookingService(bookingRepo, userRepo, slotRepo, serviceRepo, tokens, mailer, clock)
	appointmentService := services.NewAppointmentService(appointmentRepo, bookingRepo, clock)
	recordService := services.NewMedicalRecordService(recordRepo, appointmentRepo, doctorRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, appointmentRepo, notificationService)
	catalogService := services.NewCatalogService(serviceRepo, specialtyRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	authService := services.NewAuthService(userRepo)

	// Register routes
	controllers.SetupAPIRoutes(router, controllers.APIHandlers{
		Booking:       handlers.NewBookingHandler(bookingService),
		TimeSlot:      handlers.NewTimeSlotHandler(slotService),
		Appointment:   handlers.NewAppointmentHandler(appointmentService),
		Invoice:       handlers.NewInvoiceHandler(invoiceService),
		MedicalRecord: handlers.NewMedicalRecordHandler(recordService),
		Notification:  handlers.NewNotificationHandler(notificationService),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Doctor:        handlers.NewDoctorHandler(doctorService),
	})

	authController := controllers.NewAuthController(handlers.NewAuthHandler(authService))
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
