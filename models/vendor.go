package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID               string     `json:"id" gorm:"primaryKey;size:36"`
	Name             string     `json:"name" gorm:"not null"`
	OwnerName        string     `json:"ownerName"`
	FoodTypes        StringList `json:"foodTypes"`
	Pincode          string     `json:"pincode" gorm:"index"`
	Address          string     `json:"address"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email" gorm:"uniqueIndex;not null"`
	Password         string     `json:"-" gorm:"not null"`
	Salt             string     `json:"-" gorm:"not null"`
	ServiceAvailable bool       `json:"serviceAvailable" gorm:"default:false"`
	CoverImages      StringList `json:"coverImages"`
	Rating           float64    `json:"rating" gorm:"default:0"`
	Foods            []Food     `json:"foods,omitempty" gorm:"foreignKey:VendorID"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type Food struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	VendorID    string          `json:"vendorId" gorm:"not null;index;size:36"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	FoodType    string          `json:"foodType"`
	ReadyTime   int             `json:"readyTime"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Rating      float64         `json:"rating" gorm:"default:0"`
	Images      StringList      `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FoodSnapshot is the copy of a food record embedded in carts and orders.
// Later catalog edits never reach a snapshot.
type FoodSnapshot struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendorId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	FoodType    string          `json:"foodType"`
	ReadyTime   int             `json:"readyTime"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
}

func (f Food) Snapshot() FoodSnapshot {
	images := make([]string, len(f.Images))
	copy(images, f.Images)
	return FoodSnapshot{
		ID:          f.ID,
		VendorID:    f.VendorID,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		FoodType:    f.FoodType,
		ReadyTime:   f.ReadyTime,
		Price:       f.Price,
		Images:      images,
	}
}
