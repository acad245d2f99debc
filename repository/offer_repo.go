package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"food-marketplace-api/models"
)

type OfferRepo struct{ db *gorm.DB }

func NewOfferRepo(db *gorm.DB) *OfferRepo {
	return &OfferRepo{db: db}
}

// Create stores the offer and links it to its target vendors without
// touching the vendor rows themselves
func (r *OfferRepo) Create(ctx context.Context, o *models.Offer) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Omit("Vendors.*").Create(o).Error
}

func (r *OfferRepo) ByID(ctx context.Context, id string) (*models.Offer, error) {
	var o models.Offer
	if err := r.db.WithContext(ctx).Preload("Vendors").First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// All returns every offer with its target vendors, oldest first
func (r *OfferRepo) All(ctx context.Context) ([]models.Offer, error) {
	var out []models.Offer
	err := r.db.WithContext(ctx).Preload("Vendors").Order("created_at asc").Find(&out).Error
	return out, err
}

func (r *OfferRepo) Save(ctx context.Context, o *models.Offer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}
