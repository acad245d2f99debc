package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"food-marketplace-api/models"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// PlaceForCustomer stores the order, its first history row and the
// customer's reference to it, and empties the customer's cart, all in one
// transaction. The cart must still be at cartVersion, otherwise nothing is
// written and ErrStaleCart is returned.
func (r *OrderRepo) PlaceForCustomer(ctx context.Context, o *models.Order, cartVersion int) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("StatusHistory").Create(o).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   o.ID,
			ToStatus:  o.OrderStatus,
			ChangedBy: o.CustomerID,
			Note:      "Order placed by customer",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		ref := models.CustomerOrder{CustomerID: o.CustomerID, OrderID: o.ID}
		if err := tx.Create(&ref).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Customer{}).
			Where("id = ? AND cart_version = ?", o.CustomerID, cartVersion).
			Updates(map[string]interface{}{
				"cart":         models.CartLines{},
				"cart_version": gorm.Expr("cart_version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleCart
		}
		return nil
	})
}

func (r *OrderRepo) ByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// ByVendor lists the vendor's orders, newest first; an empty status matches all
func (r *OrderRepo) ByVendor(ctx context.Context, vendorID string, status models.OrderStatus) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if status != "" {
		query = query.Where("order_status = ?", status)
	}
	var out []models.Order
	err := query.Order("created_at desc").Find(&out).Error
	return out, err
}

// ByCustomer follows the customer's order references
func (r *OrderRepo) ByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Joins("JOIN customer_orders ON customer_orders.order_id = orders.id").
		Where("customer_orders.customer_id = ?", customerID).
		Order("orders.created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateStatus applies a vendor update and records it in the history
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *models.Order, from models.OrderStatus, changedBy, note string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Order{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
			"order_status": o.OrderStatus,
			"remarks":      o.Remarks,
			"ready_time":   o.ReadyTime,
		}).Error
		if err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: from,
			ToStatus:   o.OrderStatus,
			ChangedBy:  changedBy,
			Note:       note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		o.StatusHistory = append(o.StatusHistory, history)
		return nil
	})
}
