package repositories

import (
	"MediSched/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateAndNotify persists a pending booking and runs notify inside the same
// transaction, so a failed confirmation email rolls the booking back.
func (r *BookingRepository) CreateAndNotify(ctx context.Context, booking *models.Booking, notify func(*models.Booking) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return notify(booking)
	})
}

// Confirm finalizes a pending booking as one unit of work: the booking is
// flagged confirmed, every competing pending booking on the slot is purged,
// the slot is occupied, and the medical appointment is created with the next
// AP code. Booking and slot rows are locked FOR UPDATE so racing
// confirmations serialize; the loser observes AlreadyConfirmed or NotFound.
func (r *BookingRepository) Confirm(ctx context.Context, bookingID string, date time.Time) (*models.Booking, *models.MedicalAppointment, error) {
	var (
		booking     models.Booking
		appointment models.MedicalAppointment
	)

	err := withAppointmentCodeLock(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&booking, "id = ?", bookingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return fmt.Errorf("failed to load booking: %w", err)
			}
			if booking.Confirmed {
				return models.ErrAlreadyConfirmed
			}

			var slot models.TimeSlot
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&slot, "id = ?", booking.TimeSlotID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return fmt.Errorf("failed to load time slot: %w", err)
			}

			// Purge competing pending bookings: only the first confirmation wins.
			if err := tx.Where("time_slot_id = ? AND confirmed = ? AND id <> ?",
				booking.TimeSlotID, false, booking.ID).
				Delete(&models.Booking{}).Error; err != nil {
				return fmt.Errorf("failed to purge pending bookings: %w", err)
			}

			if err := tx.Model(&models.TimeSlot{}).Where("id = ?", slot.ID).
				Update("is_available", false).Error; err != nil {
				return fmt.Errorf("failed to occupy time slot: %w", err)
			}

			if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
				Update("confirmed", true).Error; err != nil {
				return fmt.Errorf("failed to confirm booking: %w", err)
			}
			booking.Confirmed = true

			code, err := nextAppointmentCode(tx)
			if err != nil {
				return err
			}
			appointment = models.MedicalAppointment{
				BookingID: booking.ID,
				Code:      code,
				Date:      date,
				Status:    models.AppointmentStatusWaiting,
			}
			if err := tx.Create(&appointment).Error; err != nil {
				return fmt.Errorf("failed to create medical appointment: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &booking, &appointment, nil
}

// CancelConfirmed removes a booking and reclaims its slot. A spawned
// appointment, when present, is retained with status Cancelled so clinical
// history survives the reclaim.
func (r *BookingRepository) CancelConfirmed(ctx context.Context, bookingID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if err := tx.Model(&models.MedicalAppointment{}).
			Where("booking_id = ?", booking.ID).
			Update("status", models.AppointmentStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel appointment: %w", err)
		}

		if err := tx.Delete(&models.Booking{}, "id = ?", booking.ID).Error; err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		if err := tx.Model(&models.TimeSlot{}).Where("id = ?", booking.TimeSlotID).
			Update("is_available", true).Error; err != nil {
			return fmt.Errorf("failed to release time slot: %w", err)
		}
		return nil
	})
}

// GetOwned fetches a booking only when it belongs to the given patient.
func (r *BookingRepository) GetOwned(ctx context.Context, id, patientID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		First(&booking, "id = ? AND patient_id = ?", id, patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetConfirmedByID fetches a confirmed booking enriched with its patient,
// slot and service.
func (r *BookingRepository) GetConfirmedByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, role_id")
		}).
		Preload("TimeSlot").
		Preload("TimeSlot.Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, first_name, last_name, specialty_id")
		}).
		Preload("Service").
		First(&booking, "id = ? AND confirmed = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get confirmed booking: %w", err)
	}
	return &booking, nil
}

// ListConfirmed returns a page of confirmed bookings. An empty patientID
// lists all patients; orderClause has been whitelisted by the caller.
func (r *BookingRepository) ListConfirmed(ctx context.Context, offset, limit int, orderClause, patientID string) (int64, []models.Booking, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("confirmed = ?", true)
	if patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("failed to count confirmed bookings: %w", err)
	}

	var bookings []models.Booking
	err := query.
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, role_id")
		}).
		Preload("TimeSlot").
		Preload("Service").
		Order(orderClause).
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list confirmed bookings: %w", err)
	}
	return total, bookings, nil
}
