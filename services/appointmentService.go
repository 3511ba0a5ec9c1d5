package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"time"
)

// AppointmentStore is the persistence surface of the appointment tracker.
type AppointmentStore interface {
	Create(ctx context.Context, bookingID string, date time.Time) (*models.MedicalAppointment, error)
	GetByID(ctx context.Context, id uint) (*models.MedicalAppointment, error)
	List(ctx context.Context, offset, limit int, doctorUserID string) (int64, []models.MedicalAppointment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	HasInvoice(ctx context.Context, appointmentID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// ConfirmedBookingReader resolves a confirmed booking, for the manual
// appointment materialization endpoint.
type ConfirmedBookingReader interface {
	GetConfirmedByID(ctx context.Context, id string) (*models.Booking, error)
	CancelConfirmed(ctx context.Context, bookingID string) error
}

type AppointmentService struct {
	appointments AppointmentStore
	bookings     ConfirmedBookingReader
	clock        Clock
}

func NewAppointmentService(appointments AppointmentStore, bookings ConfirmedBookingReader, clock Clock) *AppointmentService {
	return &AppointmentService{appointments: appointments, bookings: bookings, clock: clock}
}

// CreateForBooking materializes the appointment of a confirmed booking.
// Confirmation normally provisions it automatically; this exists for
// correction when that unit of work needs replaying.
func (s *AppointmentService) CreateForBooking(ctx context.Context, caller utils.Caller, bookingID string) (*models.MedicalAppointment, error) {
	booking, err := s.bookings.GetConfirmedByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !utils.CanAct(caller, booking.TimeSlot.Doctor.UserID) {
		return nil, models.ErrUnauthorized
	}
	return s.appointments.Create(ctx, booking.ID, s.clock.Now())
}

// UpdateStatus changes an appointment's clinical status. Setting Cancelled
// is not a plain field flip: it runs the booking cancellation path so the
// slot is reclaimed and the booking removed.
func (s *AppointmentService) UpdateStatus(ctx context.Context, caller utils.Caller, id uint, status string) (*models.MedicalAppointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, models.ErrInvalidInput
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.CanAct(caller, appointment.Booking.TimeSlot.Doctor.UserID) {
		return nil, models.ErrUnauthorized
	}

	if status == models.AppointmentStatusCancelled && appointment.Booking.ID != "" {
		// Reclaims the slot, deletes the booking and marks this
		// appointment Cancelled in one unit of work.
		if err := s.bookings.CancelConfirmed(ctx, appointment.BookingID); err != nil {
			return nil, err
		}
	} else if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	appointment.Status = status
	return appointment, nil
}

// Delete permanently removes an appointment. Only a cancelled appointment
// with no medical record and no invoice may go.
func (s *AppointmentService) Delete(ctx context.Context, caller utils.Caller, id uint) error {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !utils.CanAct(caller, appointment.Booking.TimeSlot.Doctor.UserID) {
		return models.ErrUnauthorized
	}

	if appointment.MedicalRecordID != nil {
		return models.ErrHasRecord
	}
	invoiced, err := s.appointments.HasInvoice(ctx, id)
	if err != nil {
		return err
	}
	if invoiced {
		return models.ErrHasInvoice
	}
	if appointment.Status != models.AppointmentStatusCancelled {
		return models.ErrNotCancelled
	}
	return s.appointments.Delete(ctx, id)
}

// List pages through appointments; doctor callers only see appointments on
// their own slots.
func (s *AppointmentService) List(ctx context.Context, caller utils.Caller, page, limit int) (int64, []models.MedicalAppointment, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	doctorScope := ""
	if caller.Role == models.RoleDoctor {
		doctorScope = caller.ID
	}
	return s.appointments.List(ctx, (page-1)*limit, limit, doctorScope)
}

// GetByID returns one appointment with its booking chain. Doctors cannot
// see appointments on other doctors' slots.
func (s *AppointmentService) GetByID(ctx context.Context, caller utils.Caller, id uint) (*models.MedicalAppointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleDoctor && appointment.Booking.TimeSlot.Doctor.UserID != caller.ID {
		return nil, models.ErrNotFound
	}
	return appointment, nil
}
