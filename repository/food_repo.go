package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"food-marketplace-api/models"
)

type FoodRepo struct{ db *gorm.DB }

func NewFoodRepo(db *gorm.DB) *FoodRepo {
	return &FoodRepo{db: db}
}

func (r *FoodRepo) Create(ctx context.Context, f *models.Food) error {
	return r.CreateMany(ctx, []*models.Food{f})
}

// CreateMany inserts all foods in one transaction
func (r *FoodRepo) CreateMany(ctx context.Context, foods []*models.Food) error {
	if len(foods) == 0 {
		return nil
	}
	for _, f := range foods {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range foods {
			if err := tx.Create(f).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FoodRepo) ByID(ctx context.Context, id string) (*models.Food, error) {
	var f models.Food
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// ByIDs resolves a set of ids in a single query. Unknown ids are absent
// from the result.
func (r *FoodRepo) ByIDs(ctx context.Context, ids []string) ([]models.Food, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Food
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *FoodRepo) ByVendor(ctx context.Context, vendorID string) ([]models.Food, error) {
	var out []models.Food
	err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("created_at asc").Find(&out).Error
	return out, err
}

// ReadyWithin returns foods of available vendors in the pincode whose
// ready time is at most minutes
func (r *FoodRepo) ReadyWithin(ctx context.Context, pincode string, minutes int) ([]models.Food, error) {
	var out []models.Food
	err := r.db.WithContext(ctx).
		Joins("JOIN vendors ON vendors.id = foods.vendor_id").
		Where("vendors.pincode = ? AND vendors.service_available = ? AND foods.ready_time <= ?", pincode, true, minutes).
		Order("foods.ready_time asc").
		Find(&out).Error
	return out, err
}
