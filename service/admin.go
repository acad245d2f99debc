package service

import (
	"context"
	"errors"
	"fmt"

	"food-marketplace-api/credentials"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

// VendorInput is what an administrator supplies to onboard a vendor
type VendorInput struct {
	Name      string   `json:"name" binding:"required"`
	OwnerName string   `json:"ownerName" binding:"required"`
	FoodTypes []string `json:"foodType"`
	Pincode   string   `json:"pincode" binding:"required"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
}

type AdminService struct {
	admins  *repository.AdminRepo
	vendors *repository.VendorRepo
	hasher  credentials.Hasher
	issuer  *credentials.Issuer
}

func NewAdminService(admins *repository.AdminRepo, vendors *repository.VendorRepo, hasher credentials.Hasher,
	issuer *credentials.Issuer) *AdminService {
	return &AdminService{admins: admins, vendors: vendors, hasher: hasher, issuer: issuer}
}

// EnsureAdmin creates the administrator account if it does not exist yet
func (s *AdminService) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.admins.ByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	salt, hash, err := s.secret(password)
	if err != nil {
		return err
	}
	err = s.admins.Create(ctx, &models.Admin{Email: email, Password: hash, Salt: salt})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}

func (s *AdminService) Login(ctx context.Context, email, password string) (string, error) {
	a, err := s.admins.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%w: login credential not valid", ErrInvalidCredential)
	}
	if err != nil {
		return "", err
	}
	if !s.hasher.ValidatePassword(password, a.Password, a.Salt) {
		return "", fmt.Errorf("%w: login credential not valid", ErrInvalidCredential)
	}
	return s.issuer.Issue(credentials.Claims{ActorID: a.ID, Email: a.Email, Role: models.RoleAdmin})
}

func (s *AdminService) CreateVendor(ctx context.Context, in VendorInput) (*models.Vendor, error) {
	if _, err := s.vendors.ByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: a vendor exists with email %s", ErrConflict, in.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	salt, hash, err := s.secret(in.Password)
	if err != nil {
		return nil, err
	}
	v := &models.Vendor{
		Name:        in.Name,
		OwnerName:   in.OwnerName,
		FoodTypes:   in.FoodTypes,
		Pincode:     in.Pincode,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		Password:    hash,
		Salt:        salt,
		CoverImages: models.StringList{},
	}
	err = s.vendors.Create(ctx, v)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("%w: a vendor exists with email %s", ErrConflict, in.Email)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *AdminService) Vendors(ctx context.Context) ([]models.Vendor, error) {
	return s.vendors.List(ctx)
}

func (s *AdminService) Vendor(ctx context.Context, id string) (*models.Vendor, error) {
	v, err := s.vendors.ByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "vendor "+id)
	}
	return v, nil
}

func (s *AdminService) secret(password string) (salt, hash string, err error) {
	salt, err = credentials.GenerateSalt()
	if err != nil {
		return "", "", err
	}
	hash, err = s.hasher.HashPassword(password, salt)
	return salt, hash, err
}
