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
	DoctorCacheExpiry = 24 * time.Hour
	doctorsCacheKey   = "doctors_cache"
)

// DoctorRepository reads the doctor directory. Doctors are reference data,
// so reads are cache-aside against Redis.
type DoctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache}
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	cacheKey := fmt.Sprintf("doctor_cache:%s", id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	}

	var doctor models.Doctor
	err := r.db.WithContext(ctx).Preload("Specialty").First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctorJSON, err := json.Marshal(doctor); err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	if cached, err := r.cache.Get(ctx, doctorsCacheKey); err == nil && cached != "" {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	}

	var doctors []models.Doctor
	err := r.db.WithContext(ctx).Preload("Specialty").Order("last_name ASC").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	if doctorsJSON, err := json.Marshal(doctors); err == nil {
		if err := r.cache.Set(ctx, doctorsCacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}
	return doctors, nil
}
