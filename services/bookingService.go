package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStore is the persistence surface of the booking lifecycle. The
// multi-row confirm and cancel operations are single units of work in the
// store; partial application is impossible.
type BookingStore interface {
	CreateAndNotify(ctx context.Context, booking *models.Booking, notify func(*models.Booking) error) error
	Confirm(ctx context.Context, bookingID string, date time.Time) (*models.Booking, *models.MedicalAppointment, error)
	CancelConfirmed(ctx context.Context, bookingID string) error
	GetOwned(ctx context.Context, id, patientID string) (*models.Booking, error)
	GetConfirmedByID(ctx context.Context, id string) (*models.Booking, error)
	ListConfirmed(ctx context.Context, offset, limit int, orderClause, patientID string) (int64, []models.Booking, error)
}

// UserStore resolves patient accounts.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SlotReader reads slots during booking creation.
type SlotReader interface {
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
}

// ServiceReader reads the booked service.
type ServiceReader interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

// ConfirmTokens signs and verifies the email confirmation tokens.
type ConfirmTokens interface {
	Issue(bookingID, purpose string, ttl time.Duration) (string, error)
	Verify(token, purpose string) (string, error)
}

// BookingMailer delivers the confirmation links. Delivery failure must
// surface to the caller, never be swallowed.
type BookingMailer interface {
	SendBookingConfirmation(to, name, token string) error
	SendCancellationConfirmation(to, name, token string) error
}

// PagedBookings is one page of confirmed bookings plus the unpaged total.
type PagedBookings struct {
	Total int64            `json:"total"`
	Items []models.Booking `json:"items"`
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type BookingService struct {
	bookings BookingStore
	users    UserStore
	slots    SlotReader
	services ServiceReader
	tokens   ConfirmTokens
	mailer   BookingMailer
	clock    Clock
}

func NewBookingService(bookings BookingStore, users UserStore, slots SlotReader, services ServiceReader, tokens ConfirmTokens, mailer BookingMailer, clock Clock) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		slots:    slots,
		services: services,
		tokens:   tokens,
		mailer:   mailer,
		clock:    clock,
	}
}

// Create persists a pending booking and emails the patient a confirmation
// link. The slot is not consumed yet; several pending bookings may race for
// it until one is confirmed. A failed email rolls the booking back.
func (s *BookingService) Create(ctx context.Context, patientID, timeSlotID, serviceID string) (*models.Booking, error) {
	if err := utils.ValidateBookingInput(patientID, timeSlotID, serviceID); err != nil {
		return nil, err
	}

	patient, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	slot, err := s.slots.GetByID(ctx, timeSlotID)
	if err != nil {
		return nil, err
	}
	if !slot.IsAvailable {
		return nil, models.ErrSlotTaken
	}
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		TimeSlotID: timeSlotID,
		ServiceID:  serviceID,
		Confirmed:  false,
	}
	err = s.bookings.CreateAndNotify(ctx, booking, func(b *models.Booking) error {
		token, err := s.tokens.Issue(b.ID, utils.PurposeBookingConfirm, utils.ConfirmTokenExpiry)
		if err != nil {
			return err
		}
		if err := s.mailer.SendBookingConfirmation(patient.Email, patient.FullName, token); err != nil {
			return fmt.Errorf("%w: %v", models.ErrDeliveryFailure, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Confirm finalizes the booking behind an emailed token: the booking wins
// its slot, competing pending bookings are purged, and the medical
// appointment is provisioned, all atomically.
func (s *BookingService) Confirm(ctx context.Context, token string) (*models.Booking, *models.MedicalAppointment, error) {
	bookingID, err := s.tokens.Verify(token, utils.PurposeBookingConfirm)
	if err != nil {
		return nil, nil, models.ErrInvalidToken
	}
	return s.bookings.Confirm(ctx, bookingID, s.clock.Now())
}

// RequestCancellation emails the owning patient a cancellation link.
// Ownership is checked by exact (id, patientId) match.
func (s *BookingService) RequestCancellation(ctx context.Context, bookingID, patientID string) error {
	booking, err := s.bookings.GetOwned(ctx, bookingID, patientID)
	if err != nil {
		return err
	}
	patient, err := s.users.GetByID(ctx, booking.PatientID)
	if err != nil {
		return err
	}

	token, err := s.tokens.Issue(booking.ID, utils.PurposeBookingCancel, utils.ConfirmTokenExpiry)
	if err != nil {
		return err
	}
	if err := s.mailer.SendCancellationConfirmation(patient.Email, patient.FullName, token); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailure, err)
	}
	return nil
}

// ConfirmCancellation deletes the booking behind a cancellation token and
// reclaims its slot.
func (s *BookingService) ConfirmCancellation(ctx context.Context, token string) error {
	bookingID, err := s.tokens.Verify(token, utils.PurposeBookingCancel)
	if err != nil {
		return models.ErrInvalidToken
	}
	return s.bookings.CancelConfirmed(ctx, bookingID)
}

// ListConfirmed pages through confirmed bookings. User callers only see
// their own; doctors and admins see all.
func (s *BookingService) ListConfirmed(ctx context.Context, caller utils.Caller, page, limit int, sortField, sortDir string) (*PagedBookings, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	patientScope := ""
	if caller.Role == models.RoleUser {
		patientScope = caller.ID
	}

	total, items, err := s.bookings.ListConfirmed(ctx, (page-1)*limit, limit, orderClause(sortField, sortDir), patientScope)
	if err != nil {
		return nil, err
	}
	return &PagedBookings{Total: total, Items: items}, nil
}

// GetConfirmedByID returns a confirmed booking with its joined summaries.
func (s *BookingService) GetConfirmedByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetConfirmedByID(ctx, id)
}

// orderClause whitelists the sortable columns; anything else falls back to
// the default createdAt DESC.
func orderClause(sortField, sortDir string) string {
	column := "created_at"
	switch sortField {
	case "id":
		column = "id"
	case "createdAt", "created_at", "":
	default:
	}

	direction := "DESC"
	if sortDir == "asc" || sortDir == "ASC" {
		direction = "ASC"
	}
	return column + " " + direction
}
