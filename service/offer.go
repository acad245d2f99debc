package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

// OfferInput holds the editable fields of an offer
type OfferInput struct {
	OfferType     models.OfferType `json:"offerType" binding:"required,oneof=VENDOR GENERIC"`
	Title         string           `json:"title" binding:"required"`
	Description   string           `json:"description"`
	MinValue      decimal.Decimal  `json:"minValue"`
	OfferAmount   decimal.Decimal  `json:"offerAmount"`
	StartValidity *time.Time       `json:"startValidity"`
	EndValidity   *time.Time       `json:"endValidity"`
	Promocode     string           `json:"promocode"`
	PromoType     string           `json:"promoType" binding:"omitempty,oneof=USER ALL BANK CARD"`
	Bank          []string         `json:"bank"`
	Bins          []string         `json:"bins"`
	Pincode       string           `json:"pincode"`
	IsActive      bool             `json:"isActive"`
}

func (in OfferInput) validate() error {
	if !in.OfferAmount.IsPositive() {
		return fmt.Errorf("%w: offerAmount must be greater than zero", ErrValidation)
	}
	if in.MinValue.IsNegative() {
		return fmt.Errorf("%w: minValue must not be negative", ErrValidation)
	}
	if in.StartValidity != nil && in.EndValidity != nil && in.EndValidity.Before(*in.StartValidity) {
		return fmt.Errorf("%w: endValidity is before startValidity", ErrValidation)
	}
	return nil
}

func (in OfferInput) apply(o *models.Offer) {
	o.OfferType = in.OfferType
	o.Title = in.Title
	o.Description = in.Description
	o.MinValue = in.MinValue
	o.OfferAmount = in.OfferAmount
	o.StartValidity = in.StartValidity
	o.EndValidity = in.EndValidity
	o.Promocode = in.Promocode
	o.PromoType = in.PromoType
	o.Bank = in.Bank
	o.Bins = in.Bins
	o.Pincode = in.Pincode
	o.IsActive = in.IsActive
}

type OfferService struct {
	offers  *repository.OfferRepo
	vendors *repository.VendorRepo
}

func NewOfferService(offers *repository.OfferRepo, vendors *repository.VendorRepo) *OfferService {
	return &OfferService{offers: offers, vendors: vendors}
}

// ApplicableOffers returns the offers targeting vendorID followed, per
// offer, by the offer again when it is GENERIC. An offer that is both
// targeted and generic is therefore listed twice.
func (s *OfferService) ApplicableOffers(ctx context.Context, vendorID string) ([]models.Offer, error) {
	all, err := s.offers.All(ctx)
	if err != nil {
		return nil, err
	}
	current := []models.Offer{}
	for _, o := range all {
		for _, v := range o.Vendors {
			if v.ID == vendorID {
				current = append(current, o)
			}
		}
		if o.OfferType == models.OfferGeneric {
			current = append(current, o)
		}
	}
	return current, nil
}

// CreateOffer stores an offer targeting the calling vendor
func (s *OfferService) CreateOffer(ctx context.Context, who Identity, in OfferInput) (*models.Offer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	vendor, err := s.vendors.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	offer := &models.Offer{Vendors: []models.Vendor{*vendor}}
	in.apply(offer)
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// EditOffer replaces the fields of an offer the calling vendor is targeted by
func (s *OfferService) EditOffer(ctx context.Context, who Identity, id string, in OfferInput) (*models.Offer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	offer, err := s.offers.ByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "offer "+id)
	}
	if !offer.TargetsVendor(who.ActorID) {
		return nil, fmt.Errorf("%w: offer is not owned by this vendor", ErrForbidden)
	}
	in.apply(offer)
	if err := s.offers.Save(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}
