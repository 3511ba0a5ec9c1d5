package controllers

import (
	"MediSched/handlers"
	"MediSched/middlewares"
	"MediSched/models"

	"github.com/gin-gonic/gin"
)

// APIHandlers bundles the handlers the API controller registers.
type APIHandlers struct {
	Booking       *handlers.BookingHandler
	TimeSlot      *handlers.TimeSlotHandler
	Appointment   *handlers.AppointmentHandler
	Invoice       *handlers.InvoiceHandler
	MedicalRecord *handlers.MedicalRecordHandler
	Notification  *handlers.NotificationHandler
	Catalog       *handlers.CatalogHandler
	Doctor        *handlers.DoctorHandler
}

// SetupAPIRoutes registers every domain route. The email verification
// endpoints stay public because patients open them from mail clients
// without a session; everything else requires a valid token, and
// scheduling, billing and clinical mutations additionally require the
// Doctor or Admin role.
func SetupAPIRoutes(router *gin.Engine, h APIHandlers) {
	// Public: opened from confirmation emails.
	router.GET("/booking/verify-email", h.Booking.VerifyEmail)
	router.GET("/booking/verify-cancel-email", h.Booking.VerifyCancelEmail)

	authed := router.Group("/", middlewares.TokenAuthMiddleware())

	authed.POST("/booking/add", h.Booking.CreateBooking)
	authed.GET("/booking", h.Booking.ListConfirmed)
	authed.GET("/booking/:id", h.Booking.GetByID)
	authed.POST("/booking/request-cancel/:id", h.Booking.RequestCancel)

	authed.GET("/timeSlot", h.TimeSlot.ListByDay)
	authed.GET("/timeSlot/schedule/:doctorId", h.TimeSlot.ScheduledDays)

	authed.GET("/doctor", h.Doctor.ListDoctors)
	authed.GET("/doctor/:id", h.Doctor.GetDoctorByID)

	authed.GET("/service", h.Catalog.ListServices)
	authed.GET("/service/:id", h.Catalog.GetServiceByID)
	authed.GET("/specialty", h.Catalog.ListSpecialties)

	authed.GET("/notification", h.Notification.ListNotifications)
	authed.PUT("/notification/read/:id", h.Notification.MarkRead)

	staff := router.Group("/", middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))

	staff.POST("/timeSlot/add", h.TimeSlot.CreateSlot)
	staff.POST("/timeSlot/createDefaultTimeSlot", h.TimeSlot.CreateDefaultSchedule)
	staff.DELETE("/timeSlot/delete/:id", h.TimeSlot.DeleteSlot)

	staff.POST("/appointment/add", h.Appointment.CreateAppointment)
	staff.GET("/appointment", h.Appointment.ListAppointments)
	staff.GET("/appointment/:id", h.Appointment.GetAppointmentByID)
	staff.PUT("/appointment/update/:id", h.Appointment.UpdateAppointment)
	staff.DELETE("/appointment/delete/:id", h.Appointment.DeleteAppointment)

	staff.POST("/invoice/add", h.Invoice.CreateInvoice)
	staff.GET("/invoice/:id", h.Invoice.GetInvoiceByID)
	staff.PUT("/invoice/update/:id", h.Invoice.UpdateInvoice)
	staff.DELETE("/invoice/delete/:id", h.Invoice.DeleteInvoice)

	staff.POST("/medicalRecord/add", h.MedicalRecord.CreateRecord)
	staff.DELETE("/medicalRecord/delete/:id", h.MedicalRecord.DeleteRecord)

	admin := router.Group("/", middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAdmin))

	admin.POST("/service/add", h.Catalog.CreateService)
	admin.DELETE("/service/delete/:id", h.Catalog.DeleteService)
	admin.POST("/specialty/add", h.Catalog.CreateSpecialty)
	admin.DELETE("/specialty/delete/:id", h.Catalog.DeleteSpecialty)
}
