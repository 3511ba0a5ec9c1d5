package repositories

import (
	"MediSched/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create persists the invoice and flips the appointment's status to
// Invoiced in one transaction.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		if err := tx.Model(&models.MedicalAppointment{}).
			Where("id = ?", invoice.AppointmentID).
			Update("status", models.AppointmentStatusInvoiced).Error; err != nil {
			return fmt.Errorf("failed to mark appointment invoiced: %w", err)
		}
		return nil
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Booking").
		Preload("Appointment.Booking.Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, role_id")
		}).
		Preload("Appointment.Booking.TimeSlot").
		Preload("Appointment.Booking.TimeSlot.Doctor").
		Preload("Appointment.Booking.Service").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

// Update unconditionally overwrites total, status and note.
func (r *InvoiceRepository) Update(ctx context.Context, id uint, total float64, status, note string) error {
	result := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total":  total,
			"status": status,
			"note":   note,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
