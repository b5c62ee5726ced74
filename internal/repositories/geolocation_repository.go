package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	model "field-service.com/field-service/internal/models"
)

type GeoLocationRepository struct {
	db *gorm.DB
}

func NewGeoLocationRepository(db *gorm.DB) *GeoLocationRepository {
	return &GeoLocationRepository{db: db}
}

func (r *GeoLocationRepository) WithTx(tx *gorm.DB) *GeoLocationRepository {
	return &GeoLocationRepository{db: tx}
}

func (r *GeoLocationRepository) Create(ctx context.Context, loc *model.GeoLocation) error {
	loc.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(loc).Error
}
