package location

import (
	"context"

	"remote-pantry/entities"

	"gorm.io/gorm"
)

type (
	LocationRepository interface {
		AddLocation(ctx context.Context, loc *entities.Location) error
		GetLocationByID(ctx context.Context, id uint) (*entities.Location, error)
		// GetLocationByName matches the name exactly, case-sensitive.
		GetLocationByName(ctx context.Context, userID uint, name string) (*entities.Location, error)
		GetLocationsByUser(ctx context.Context, userID uint) ([]*entities.Location, error)
		UpdateLocation(ctx context.Context, loc *entities.Location) error
	}

	locationRepository struct {
		db *gorm.DB
	}
)

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) AddLocation(ctx context.Context, loc *entities.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepository) GetLocationByID(ctx context.Context, id uint) (*entities.Location, error) {
	var loc entities.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) GetLocationByName(ctx context.Context, userID uint, name string) (*entities.Location, error) {
	var loc entities.Location
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) GetLocationsByUser(ctx context.Context, userID uint) ([]*entities.Location, error) {
	var locations []*entities.Location
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) UpdateLocation(ctx context.Context, loc *entities.Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}
