package pantry

import (
	"context"

	"remote-pantry/entities"

	"gorm.io/gorm"
)

type (
	PantryRepository interface {
		AddFoodstuff(ctx context.Context, foodstuff *entities.Foodstuff) error
		GetFoodstuffByID(ctx context.Context, id uint) (*entities.Foodstuff, error)
		UpdateFoodstuff(ctx context.Context, foodstuff *entities.Foodstuff) error
		// UpdateFoodstuffBatch writes every row inside one transaction, so a
		// bulk form submission commits all-or-nothing.
		UpdateFoodstuffBatch(ctx context.Context, foodstuffs []*entities.Foodstuff) error

		GetPantryItems(ctx context.Context, userID, locationID uint) ([]*entities.Foodstuff, error)
		GetExpiringItems(ctx context.Context, userID uint) ([]*entities.Foodstuff, error)
		GetShoppingList(ctx context.Context, userID uint) ([]*entities.Foodstuff, error)
		GetHistory(ctx context.Context, userID uint) ([]*entities.Foodstuff, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddFoodstuff(ctx context.Context, foodstuff *entities.Foodstuff) error {
	return r.db.WithContext(ctx).Create(foodstuff).Error
}

func (r *pantryRepository) GetFoodstuffByID(ctx context.Context, id uint) (*entities.Foodstuff, error) {
	var foodstuff entities.Foodstuff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodstuff).Error; err != nil {
		return nil, err
	}
	return &foodstuff, nil
}

func (r *pantryRepository) UpdateFoodstuff(ctx context.Context, foodstuff *entities.Foodstuff) error {
	return r.db.WithContext(ctx).Save(foodstuff).Error
}

func (r *pantryRepository) UpdateFoodstuffBatch(ctx context.Context, foodstuffs []*entities.Foodstuff) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, foodstuff := range foodstuffs {
			if err := tx.Save(foodstuff).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *pantryRepository) GetPantryItems(ctx context.Context, userID, locationID uint) ([]*entities.Foodstuff, error) {
	var foodstuffs []*entities.Foodstuff
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ? AND in_pantry = ?", userID, locationID, true).
		Order("name asc").
		Find(&foodstuffs).Error; err != nil {
		return nil, err
	}
	return foodstuffs, nil
}

// GetExpiringItems returns in-pantry items with expiration tracking, oldest
// row first so the service's stable sort keeps insertion order on ties.
func (r *pantryRepository) GetExpiringItems(ctx context.Context, userID uint) ([]*entities.Foodstuff, error) {
	var foodstuffs []*entities.Foodstuff
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Where("user_id = ? AND expires_after_days IS NOT NULL AND in_pantry = ?", userID, true).
		Order("id asc").
		Find(&foodstuffs).Error; err != nil {
		return nil, err
	}
	return foodstuffs, nil
}

func (r *pantryRepository) GetShoppingList(ctx context.Context, userID uint) ([]*entities.Foodstuff, error) {
	var foodstuffs []*entities.Foodstuff
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND on_shopping_list = ?", userID, true).
		Order("id asc").
		Find(&foodstuffs).Error; err != nil {
		return nil, err
	}
	return foodstuffs, nil
}

func (r *pantryRepository) GetHistory(ctx context.Context, userID uint) ([]*entities.Foodstuff, error) {
	var foodstuffs []*entities.Foodstuff
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND in_pantry = ?", userID, false).
		Order("last_purchased desc").
		Find(&foodstuffs).Error; err != nil {
		return nil, err
	}
	return foodstuffs, nil
}
