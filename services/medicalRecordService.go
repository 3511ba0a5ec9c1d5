package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
)

// MedicalRecordStore is the persistence surface for medical records.
type MedicalRecordStore interface {
	FileRecord(ctx context.Context, record *models.MedicalRecord, appointmentID uint) error
	GetByID(ctx context.Context, id uint) (*models.MedicalRecord, error)
	Delete(ctx context.Context, id uint) error
}

type MedicalRecordService struct {
	records      MedicalRecordStore
	appointments AppointmentStore
	doctors      DoctorDirectory
}

func NewMedicalRecordService(records MedicalRecordStore, appointments AppointmentStore, doctors DoctorDirectory) *MedicalRecordService {
	return &MedicalRecordService{records: records, appointments: appointments, doctors: doctors}
}

// Create files the clinical outcome for an appointment. Only the treating
// doctor (or an admin) may file, only once per appointment; filing flips
// the appointment's status to Done.
func (s *MedicalRecordService) Create(ctx context.Context, caller utils.Caller, appointmentID uint, diagnosis, prescription, notes string) (*models.MedicalRecord, error) {
	if err := utils.ValidateRecordInput(diagnosis); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !utils.CanAct(caller, appointment.Booking.TimeSlot.Doctor.UserID) {
		return nil, models.ErrUnauthorized
	}
	if appointment.MedicalRecordID != nil {
		return nil, models.ErrAlreadyExists
	}

	record := &models.MedicalRecord{
		DoctorID:     appointment.Booking.TimeSlot.DoctorID,
		Diagnosis:    diagnosis,
		Prescription: prescription,
		Notes:        notes,
	}
	if err := s.records.FileRecord(ctx, record, appointmentID); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record; the appointment's back-link is cleared and its
// status resets to Waiting.
func (s *MedicalRecordService) Delete(ctx context.Context, caller utils.Caller, id uint) error {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	doctor, err := s.doctors.GetByID(ctx, record.DoctorID)
	if err != nil {
		return err
	}
	if !utils.CanAct(caller, doctor.UserID) {
		return models.ErrUnauthorized
	}
	return s.records.Delete(ctx, id)
}
