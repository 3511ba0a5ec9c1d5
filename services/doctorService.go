package services

import (
	"MediSched/models"
	"context"
)

// DoctorService exposes the read-only doctor directory.
type DoctorService struct {
	doctors DoctorDirectory
}

func NewDoctorService(doctors DoctorDirectory) *DoctorService {
	return &DoctorService{doctors: doctors}
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *DoctorService) GetAll(ctx context.Context) ([]models.Doctor, error) {
	return s.doctors.GetAll(ctx)
}
