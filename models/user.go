package models

import (
	"time"
)

// UserRole defines the actor kinds that can hold a session
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleVendor   UserRole = "vendor"
	RoleAdmin    UserRole = "admin"
)

type Customer struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Salt        string    `json:"-" gorm:"not null"`
	Phone       string    `json:"phone" gorm:"not null"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Address     string    `json:"address"`
	Verified    bool      `json:"verified" gorm:"default:false"`
	OTP         int       `json:"-" gorm:"column:otp"`
	OTPExpiry   time.Time `json:"-" gorm:"column:otp_expiry"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Cart        CartLines `json:"cart" gorm:"column:cart"`
	CartVersion int       `json:"-" gorm:"column:cart_version;not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomerOrder links a customer to an order in their history
type CustomerOrder struct {
	CustomerID string    `gorm:"primaryKey;size:36"`
	OrderID    string    `gorm:"primaryKey;size:36"`
	CreatedAt  time.Time
}

type Admin struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Salt      string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
