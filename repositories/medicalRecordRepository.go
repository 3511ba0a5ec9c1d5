package repositories

import (
	"MediSched/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

// FileRecord creates the record and, in the same transaction, links it to
// the appointment and flips the appointment's status to Done.
func (r *MedicalRecordRepository) FileRecord(ctx context.Context, record *models.MedicalRecord, appointmentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create medical record: %w", err)
		}
		result := tx.Model(&models.MedicalAppointment{}).
			Where("id = ? AND medical_record_id IS NULL", appointmentID).
			Updates(map[string]interface{}{
				"medical_record_id": record.ID,
				"status":            models.AppointmentStatusDone,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to link medical record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrAlreadyExists
		}
		return nil
	})
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

// Delete removes a record, clears the appointment back-link and resets the
// appointment's status to Waiting, all in one transaction.
func (r *MedicalRecordRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MedicalAppointment{}).
			Where("medical_record_id = ?", id).
			Updates(map[string]interface{}{
				"medical_record_id": nil,
				"status":            models.AppointmentStatusWaiting,
			}).Error; err != nil {
			return fmt.Errorf("failed to unlink medical record: %w", err)
		}

		result := tx.Delete(&models.MedicalRecord{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete medical record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
