package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the closed set of states an order can be in
type OrderStatus string

const (
	StatusWaiting    OrderStatus = "Waiting"
	StatusReceived   OrderStatus = "Received"
	StatusCooking    OrderStatus = "Cooking"
	StatusReady      OrderStatus = "Ready"
	StatusDispatched OrderStatus = "Dispatched"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// PaidCOD is the only payment marker; payment capture is out of scope
const PaidCOD = "COD"

type Order struct {
	ID            string               `json:"id" gorm:"primaryKey;size:36"`
	OrderID       string               `json:"orderId" gorm:"index;not null"` // display id, not unique
	VendorID      string               `json:"vendorId" gorm:"index;not null;size:36"`
	CustomerID    string               `json:"customerId" gorm:"index;not null;size:36"`
	Items         OrderItems           `json:"items" gorm:"not null"`
	TotalAmount   decimal.Decimal      `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	OrderDate     time.Time            `json:"orderDate"`
	PaidThrough   string               `json:"paidThrough" gorm:"not null;default:'COD'"`
	OrderStatus   OrderStatus          `json:"orderStatus" gorm:"not null;default:'Waiting'"`
	Remarks       string               `json:"remarks"`
	AppliedOffers bool                 `json:"appliedOffers"`
	OfferID       *string              `json:"offerId,omitempty" gorm:"size:36"`
	ReadyTime     int                  `json:"readyTime"`
	StatusHistory []OrderStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// OrderStatusHistory tracks every status change of an order
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"orderId" gorm:"not null;index;size:36"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  string      `json:"changedBy"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"createdAt"`
}
