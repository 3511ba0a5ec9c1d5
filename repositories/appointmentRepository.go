package repositories

import (
	"MediSched/database"
	"MediSched/models"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	appointmentCodePrefix  = "AP"
	appointmentCodeDigits  = 5
	appointmentCodeLockKey = "appointment_code_lock"
)

// withAppointmentCodeLock serializes AP-code generation across processes.
// The unique index on the code column is the backstop should the lock expire
// mid-transaction.
func withAppointmentCodeLock(ctx context.Context, fn func() error) error {
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 200 * time.Millisecond

	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, appointmentCodeLockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire appointment code lock: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, appointmentCodeLockKey, lockValue); err != nil {
			log.Printf("Failed to release appointment code lock: %v", err)
		}
	}()

	return fn()
}

// nextAppointmentCode derives the next AP code from the lexicographically
// largest existing one. Runs inside the caller's transaction.
func nextAppointmentCode(tx *gorm.DB) (string, error) {
	var last models.MedicalAppointment
	err := tx.Select("code").
		Where("code LIKE ?", appointmentCodePrefix+"%").
		Order("code DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return "", fmt.Errorf("failed to query last appointment code: %w", err)
	}
	return bumpAppointmentCode(last.Code), nil
}

// bumpAppointmentCode increments a code like AP00007 to AP00008; an empty or
// malformed previous code starts the sequence at AP00001.
func bumpAppointmentCode(last string) string {
	seq := 0
	if strings.HasPrefix(last, appointmentCodePrefix) {
		if n, err := strconv.Atoi(last[len(appointmentCodePrefix):]); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%0*d", appointmentCodePrefix, appointmentCodeDigits, seq+1)
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create materializes an appointment for a confirmed booking, for the manual
// correction endpoint. Normal provisioning happens inside booking confirm.
func (r *AppointmentRepository) Create(ctx context.Context, bookingID string, date time.Time) (*models.MedicalAppointment, error) {
	var appointment models.MedicalAppointment
	err := withAppointmentCodeLock(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing int64
			if err := tx.Model(&models.MedicalAppointment{}).
				Where("booking_id = ?", bookingID).
				Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to check existing appointment: %w", err)
			}
			if existing > 0 {
				return models.ErrAlreadyExists
			}

			code, err := nextAppointmentCode(tx)
			if err != nil {
				return err
			}
			appointment = models.MedicalAppointment{
				BookingID: bookingID,
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
		return nil, err
	}
	return &appointment, nil
}

// GetByID fetches an appointment with its booking chain: patient, slot with
// its doctor, and service.
func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.MedicalAppointment, error) {
	var appointment models.MedicalAppointment
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, role_id")
		}).
		Preload("Booking.TimeSlot").
		Preload("Booking.TimeSlot.Doctor").
		Preload("Booking.Service").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// List returns a page of appointments, newest first. A non-empty
// doctorUserID scopes the listing to appointments on that doctor's slots.
func (r *AppointmentRepository) List(ctx context.Context, offset, limit int, doctorUserID string) (int64, []models.MedicalAppointment, error) {
	query := r.db.WithContext(ctx).Model(&models.MedicalAppointment{})
	if doctorUserID != "" {
		query = query.
			Joins("JOIN booking ON booking.id = medical_appointment.booking_id").
			Joins("JOIN time_slot ON time_slot.id = booking.time_slot_id").
			Joins("JOIN doctor ON doctor.id = time_slot.doctor_id").
			Where("doctor.user_id = ?", doctorUserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	var appointments []models.MedicalAppointment
	err := query.
		Preload("Booking").
		Preload("Booking.Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, role_id")
		}).
		Preload("Booking.TimeSlot").
		Preload("Booking.Service").
		Order("medical_appointment.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return total, appointments, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.MedicalAppointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update appointment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// HasInvoice reports whether any invoice references the appointment.
func (r *AppointmentRepository) HasInvoice(ctx context.Context, appointmentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check appointment invoices: %w", err)
	}
	return count > 0, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.MedicalAppointment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
