package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"

	"github.com/google/uuid"
)

// ServiceStore is the persistence surface for the service catalog.
type ServiceStore interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetAll(ctx context.Context) ([]models.Service, error)
	Delete(ctx context.Context, id string) error
}

// SpecialtyStore is the persistence surface for specialties.
type SpecialtyStore interface {
	Create(ctx context.Context, specialty *models.Specialty) error
	GetAll(ctx context.Context) ([]models.Specialty, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the reference data bookings and invoices draw on:
// billable services and medical specialties.
type CatalogService struct {
	services    ServiceStore
	specialties SpecialtyStore
}

func NewCatalogService(services ServiceStore, specialties SpecialtyStore) *CatalogService {
	return &CatalogService{services: services, specialties: specialties}
}

func (s *CatalogService) CreateService(ctx context.Context, name string, price float64, description, specialtyID string) (*models.Service, error) {
	if err := utils.ValidateServiceInput(name, price); err != nil {
		return nil, err
	}
	service := &models.Service{
		ID:          uuid.New().String(),
		Name:        name,
		Price:       price,
		Description: description,
		SpecialtyID: specialtyID,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.services.GetAll(ctx)
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	return s.services.Delete(ctx, id)
}

func (s *CatalogService) CreateSpecialty(ctx context.Context, name, description string) (*models.Specialty, error) {
	if name == "" {
		return nil, models.ErrInvalidInput
	}
	specialty := &models.Specialty{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	if err := s.specialties.Create(ctx, specialty); err != nil {
		return nil, err
	}
	return specialty, nil
}

func (s *CatalogService) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	return s.specialties.GetAll(ctx)
}

func (s *CatalogService) DeleteSpecialty(ctx context.Context, id string) error {
	return s.specialties.Delete(ctx, id)
}
