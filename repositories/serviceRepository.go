package repositories

import (
	"MediSched/cache"
	"MediSched/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	ServiceCacheExpiry = 24 * time.Hour
	servicesCacheKey   = "services_cache"
)

type ServiceRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewServiceRepository(db *gorm.DB, cache *cache.Cache) *ServiceRepository {
	return &ServiceRepository{db: db, cache: cache}
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return r.invalidate(ctx, service.ID)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	cacheKey := r.serviceCacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var service models.Service
		if err := json.Unmarshal([]byte(cached), &service); err == nil {
			return &service, nil
		}
	}

	var service models.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if serviceJSON, err := json.Marshal(service); err == nil {
		if err := r.cache.Set(ctx, cacheKey, serviceJSON, ServiceCacheExpiry); err != nil {
			log.Printf("Failed to set service in cache: %v", err)
		}
	}
	return &service, nil
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]models.Service, error) {
	if cached, err := r.cache.Get(ctx, servicesCacheKey); err == nil && cached != "" {
		var services []models.Service
		if err := json.Unmarshal([]byte(cached), &services); err == nil {
			return services, nil
		}
	}

	var services []models.Service
	err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if servicesJSON, err := json.Marshal(services); err == nil {
		if err := r.cache.Set(ctx, servicesCacheKey, servicesJSON, ServiceCacheExpiry); err != nil {
			log.Printf("Failed to set services in cache: %v", err)
		}
	}
	return services, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return r.invalidate(ctx, id)
}

func (r *ServiceRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.serviceCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete service cache: %w", err)
	}
	return r.cache.Delete(ctx, servicesCacheKey)
}

func (r *ServiceRepository) serviceCacheKey(id string) string {
	return fmt.Sprintf("service_cache:%s", id)
}
