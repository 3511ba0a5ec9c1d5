package services

import (
	"MediSched/models"
	"context"
	"fmt"
	"log"
)

// InvoiceStore is the persistence surface for invoices.
type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
	Update(ctx context.Context, id uint, total float64, status, note string) error
	Delete(ctx context.Context, id uint) error
}

// NotificationSink raises in-app notifications for users.
type NotificationSink interface {
	Notify(ctx context.Context, title, content, userID string) error
}

type InvoiceService struct {
	invoices      InvoiceStore
	appointments  AppointmentStore
	notifications NotificationSink
}

func NewInvoiceService(invoices InvoiceStore, appointments AppointmentStore, notifications NotificationSink) *InvoiceService {
	return &InvoiceService{invoices: invoices, appointments: appointments, notifications: notifications}
}

// Create bills an appointment. A nil total defaults to the booked service's
// price. The appointment flips to Invoiced and the treating doctor is
// notified. An appointment whose booking was cancelled cannot be billed.
func (s *InvoiceService) Create(ctx context.Context, appointmentID uint, total *float64, status, note string) (*models.Invoice, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Booking.ID == "" || appointment.Status == models.AppointmentStatusCancelled {
		return nil, models.ErrBookingCancelled
	}

	amount := appointment.Booking.Service.Price
	if total != nil && *total > 0 {
		amount = *total
	}

	invoice := &models.Invoice{
		AppointmentID: appointmentID,
		Total:         amount,
		Status:        status,
		Note:          note,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	doctor := appointment.Booking.TimeSlot.Doctor
	title := fmt.Sprintf("Invoice issued for appointment %s", appointment.Code)
	content := fmt.Sprintf("An invoice of %.0f was issued for appointment %s (patient %s).",
		amount, appointment.Code, appointment.Booking.Patient.FullName)
	if err := s.notifications.Notify(ctx, title, content, doctor.UserID); err != nil {
		// The invoice is already committed; a lost notification is not
		// worth failing the request over.
		log.Printf("Failed to notify doctor %s about invoice: %v", doctor.ID, err)
	}

	return s.invoices.GetByID(ctx, invoice.ID)
}

// Update unconditionally overwrites total, status and note.
func (s *InvoiceService) Update(ctx context.Context, id uint, total float64, status, note string) (*models.Invoice, error) {
	if err := s.invoices.Update(ctx, id, total, status, note); err != nil {
		return nil, err
	}
	return s.invoices.GetByID(ctx, id)
}

func (s *InvoiceService) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	return s.invoices.Delete(ctx, id)
}
