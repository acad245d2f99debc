package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"food-marketplace-api/models"
)

type VendorRepo struct{ db *gorm.DB }

func NewVendorRepo(db *gorm.DB) *VendorRepo {
	return &VendorRepo{db: db}
}

func (r *VendorRepo) Create(ctx context.Context, v *models.Vendor) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (r *VendorRepo) ByID(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// WithFoods loads the vendor together with its menu
func (r *VendorRepo) WithFoods(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.db.WithContext(ctx).Preload("Foods").First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *VendorRepo) ByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *VendorRepo) List(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&out).Error
	return out, err
}

// AvailableIn returns vendors that currently take orders for the pincode
func (r *VendorRepo) AvailableIn(ctx context.Context, pincode string) ([]models.Vendor, error) {
	var out []models.Vendor
	err := r.db.WithContext(ctx).Preload("Foods").
		Where("pincode = ? AND service_available = ?", pincode, true).
		Order("rating desc").
		Find(&out).Error
	return out, err
}

// Save writes every column of the vendor; foods are left alone
func (r *VendorRepo) Save(ctx context.Context, v *models.Vendor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error
}
