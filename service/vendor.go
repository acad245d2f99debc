package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"food-marketplace-api/credentials"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
	"food-marketplace-api/sheets"
)

// FoodInput describes a food a vendor adds to its menu
type FoodInput struct {
	Name        string
	Description string
	Category    string
	FoodType    string
	ReadyTime   int
	Price       decimal.Decimal
}

func (in FoodInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: food name is required", ErrValidation)
	}
	if !in.Price.IsPositive() {
		return fmt.Errorf("%w: food price must be greater than zero", ErrValidation)
	}
	if in.ReadyTime < 0 {
		return fmt.Errorf("%w: readyTime must not be negative", ErrValidation)
	}
	return nil
}

// ImportResult reports a spreadsheet import
type ImportResult struct {
	Foods       []models.Food `json:"foods"`
	SkippedRows []int         `json:"skippedRows"`
}

type VendorService struct {
	vendors *repository.VendorRepo
	foods   *repository.FoodRepo
	hasher  credentials.Hasher
	issuer  *credentials.Issuer
}

func NewVendorService(vendors *repository.VendorRepo, foods *repository.FoodRepo, hasher credentials.Hasher,
	issuer *credentials.Issuer) *VendorService {
	return &VendorService{vendors: vendors, foods: foods, hasher: hasher, issuer: issuer}
}

func (s *VendorService) Login(ctx context.Context, email, password string) (string, error) {
	v, err := s.vendors.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%w: login credential not valid", ErrInvalidCredential)
	}
	if err != nil {
		return "", err
	}
	if !s.hasher.ValidatePassword(password, v.Password, v.Salt) {
		return "", fmt.Errorf("%w: password is not valid", ErrInvalidCredential)
	}
	return s.issuer.Issue(credentials.Claims{
		ActorID:   v.ID,
		Email:     v.Email,
		Role:      models.RoleVendor,
		Name:      v.Name,
		FoodTypes: v.FoodTypes,
	})
}

func (s *VendorService) Profile(ctx context.Context, who Identity) (*models.Vendor, error) {
	v, err := s.vendors.WithFoods(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	return v, nil
}

func (s *VendorService) UpdateProfile(ctx context.Context, who Identity, name, address, phone string, foodTypes []string) (*models.Vendor, error) {
	return s.update(ctx, who, func(v *models.Vendor) {
		v.Name = name
		v.Address = address
		v.Phone = phone
		v.FoodTypes = foodTypes
	})
}

// ToggleService flips whether the vendor currently accepts orders
func (s *VendorService) ToggleService(ctx context.Context, who Identity) (*models.Vendor, error) {
	return s.update(ctx, who, func(v *models.Vendor) {
		v.ServiceAvailable = !v.ServiceAvailable
	})
}

func (s *VendorService) AddCoverImages(ctx context.Context, who Identity, filenames []string) (*models.Vendor, error) {
	return s.update(ctx, who, func(v *models.Vendor) {
		v.CoverImages = append(v.CoverImages, filenames...)
	})
}

// AddFood creates a food on the vendor's menu and returns the vendor with its foods
func (s *VendorService) AddFood(ctx context.Context, who Identity, in FoodInput, images []string) (*models.Vendor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v, err := s.vendors.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	food := newFood(v.ID, in)
	food.Images = images
	if err := s.foods.Create(ctx, food); err != nil {
		return nil, err
	}
	return s.Profile(ctx, who)
}

func (s *VendorService) Foods(ctx context.Context, who Identity) ([]models.Food, error) {
	return s.foods.ByVendor(ctx, who.ActorID)
}

// ImportFoods adds every valid row of a food spreadsheet to the menu
func (s *VendorService) ImportFoods(ctx context.Context, who Identity, r io.Reader) (*ImportResult, error) {
	v, err := s.vendors.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	rows, skipped, err := sheets.ParseFoods(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	foods := make([]*models.Food, 0, len(rows))
	for _, row := range rows {
		in := FoodInput{
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			FoodType:    row.FoodType,
			ReadyTime:   row.ReadyTime,
			Price:       row.Price,
		}
		if in.validate() != nil {
			skipped = append(skipped, row.Line)
			continue
		}
		foods = append(foods, newFood(v.ID, in))
	}
	if err := s.foods.CreateMany(ctx, foods); err != nil {
		return nil, err
	}

	res := &ImportResult{Foods: make([]models.Food, len(foods)), SkippedRows: skipped}
	for i, f := range foods {
		res.Foods[i] = *f
	}
	return res, nil
}

func (s *VendorService) update(ctx context.Context, who Identity, change func(v *models.Vendor)) (*models.Vendor, error) {
	v, err := s.vendors.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	change(v)
	if err := s.vendors.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func newFood(vendorID string, in FoodInput) *models.Food {
	return &models.Food{
		VendorID:    vendorID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		FoodType:    in.FoodType,
		ReadyTime:   in.ReadyTime,
		Price:       in.Price,
		Images:      models.StringList{},
	}
}
