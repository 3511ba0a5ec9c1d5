package repositories

import (
	"MediSched/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create time slot: %w", err)
	}
	return nil
}

// CreateBatch inserts a generated day schedule in one transaction.
func (r *TimeSlotRepository) CreateBatch(ctx context.Context, slots []models.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&slots).Error; err != nil {
		return fmt.Errorf("failed to create time slots: %w", err)
	}
	return nil
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get time slot: %w", err)
	}
	return &slot, nil
}

// CountOverlapping counts the doctor's slots intersecting [start, end).
func (r *TimeSlotRepository) CountOverlapping(ctx context.Context, doctorID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("doctor_id = ? AND start_time < ? AND end_time > ?", doctorID, end, start).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping slots: %w", err)
	}
	return count, nil
}

// CountForDoctorBetween counts the doctor's slots starting within [from, to).
func (r *TimeSlotRepository) CountForDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}

// ListByDoctorBetween returns the doctor's slots starting within [from, to),
// sorted by start time ascending.
func (r *TimeSlotRepository) ListByDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, from, to).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	return slots, nil
}

// ListScheduleDays groups all of a doctor's slots by calendar date.
func (r *TimeSlotRepository) ListScheduleDays(ctx context.Context, doctorID string) ([]models.ScheduleDay, error) {
	var days []models.ScheduleDay
	err := r.db.WithContext(ctx).Model(&models.TimeSlot{}).
		Select("DATE(start_time) AS date, COUNT(*) AS count").
		Where("doctor_id = ?", doctorID).
		Group("DATE(start_time)").
		Order("date ASC").
		Scan(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group schedule days: %w", err)
	}
	return days, nil
}

// CountBookings counts the bookings, pending or confirmed, referencing a slot.
func (r *TimeSlotRepository) CountBookings(ctx context.Context, slotID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("time_slot_id = ?", slotID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count slot bookings: %w", err)
	}
	return count, nil
}

func (r *TimeSlotRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.TimeSlot{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete time slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
