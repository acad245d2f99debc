package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferType string

const (
	OfferVendor  OfferType = "VENDOR"
	OfferGeneric OfferType = "GENERIC"
)

type Offer struct {
	ID            string          `json:"id" gorm:"primaryKey;size:36"`
	OfferType     OfferType       `json:"offerType" gorm:"not null"`
	Vendors       []Vendor        `json:"vendors,omitempty" gorm:"many2many:offer_vendors"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description"`
	MinValue      decimal.Decimal `json:"minValue" gorm:"type:decimal(12,2)"`
	OfferAmount   decimal.Decimal `json:"offerAmount" gorm:"type:decimal(12,2);not null"`
	StartValidity *time.Time      `json:"startValidity"`
	EndValidity   *time.Time      `json:"endValidity"`
	Promocode     string          `json:"promocode"`
	PromoType     string          `json:"promoType"` // USER, ALL, BANK, CARD
	Bank          StringList      `json:"bank"`
	Bins          StringList      `json:"bins"`
	Pincode       string          `json:"pincode"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TargetsVendor reports whether the vendor is in the offer's target set
func (o Offer) TargetsVendor(vendorID string) bool {
	for _, v := range o.Vendors {
		if v.ID == vendorID {
			return true
		}
	}
	return false
}
