package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"food-marketplace-api/models"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Cart == nil {
		c.Cart = models.CartLines{}
	}
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CustomerRepo) ByID(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerRepo) ByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerRepo) SetOTP(ctx context.Context, id string, otp int, expiry time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"otp": otp, "otp_expiry": expiry})
}

// MarkVerified flags the customer verified and burns the otp
func (r *CustomerRepo) MarkVerified(ctx context.Context, id string) error {
	return r.update(ctx, id, map[string]interface{}{"verified": true, "otp": 0})
}

func (r *CustomerRepo) UpdateProfile(ctx context.Context, id, firstName, lastName, address string) error {
	return r.update(ctx, id, map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"address":    address,
	})
}

// UpdateCart stores lines only if the cart is still at version. A lost race
// returns ErrStaleCart.
func (r *CustomerRepo) UpdateCart(ctx context.Context, id string, version int, lines models.CartLines) error {
	if lines == nil {
		lines = models.CartLines{}
	}
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ? AND cart_version = ?", id, version).
		Updates(map[string]interface{}{
			"cart":         lines,
			"cart_version": gorm.Expr("cart_version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleCart
	}
	return nil
}

func (r *CustomerRepo) update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
