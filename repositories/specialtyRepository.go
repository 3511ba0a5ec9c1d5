package repositories

import (
	"MediSched/cache"
	"MediSched/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	SpecialtyCacheExpiry = 24 * time.Hour
	specialtiesCacheKey  = "specialties_cache"
)

type SpecialtyRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewSpecialtyRepository(db *gorm.DB, cache *cache.Cache) *SpecialtyRepository {
	return &SpecialtyRepository{db: db, cache: cache}
}

func (r *SpecialtyRepository) Create(ctx context.Context, specialty *models.Specialty) error {
	if err := r.db.WithContext(ctx).Create(specialty).Error; err != nil {
		return fmt.Errorf("failed to create specialty: %w", err)
	}
	return r.cache.Delete(ctx, specialtiesCacheKey)
}

func (r *SpecialtyRepository) GetAll(ctx context.Context) ([]models.Specialty, error) {
	if cached, err := r.cache.Get(ctx, specialtiesCacheKey); err == nil && cached != "" {
		var specialties []models.Specialty
		if err := json.Unmarshal([]byte(cached), &specialties); err == nil {
			return specialties, nil
		}
	}

	var specialties []models.Specialty
	err := r.db.WithContext(ctx).Order("name ASC").Find(&specialties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}

	if specialtiesJSON, err := json.Marshal(specialties); err == nil {
		if err := r.cache.Set(ctx, specialtiesCacheKey, specialtiesJSON, SpecialtyCacheExpiry); err != nil {
			log.Printf("Failed to set specialties in cache: %v", err)
		}
	}
	return specialties, nil
}

func (r *SpecialtyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Specialty{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete specialty: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return r.cache.Delete(ctx, specialtiesCacheKey)
}
