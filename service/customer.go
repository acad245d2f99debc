package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-marketplace-api/credentials"
	"food-marketplace-api/models"
	"food-marketplace-api/notify"
	"food-marketplace-api/repository"
)

// AuthResult is what signup, login and verification hand back to a customer
type AuthResult struct {
	Token    string `json:"token"`
	Verified bool   `json:"verified"`
	Email    string `json:"email"`
}

type CustomerService struct {
	repo   *repository.CustomerRepo
	hasher credentials.Hasher
	issuer *credentials.Issuer
	notify *notify.Dispatcher
	otpTTL time.Duration
	now    func() time.Time
}

func NewCustomerService(repo *repository.CustomerRepo, hasher credentials.Hasher, issuer *credentials.Issuer,
	dispatcher *notify.Dispatcher, otpTTL time.Duration) *CustomerService {
	return &CustomerService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		notify: dispatcher,
		otpTTL: otpTTL,
		now:    time.Now,
	}
}

func (s *CustomerService) SignUp(ctx context.Context, email, phone, password string) (*AuthResult, error) {
	if _, err := s.repo.ByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a customer exists with email %s", ErrConflict, email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	salt, err := credentials.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.HashPassword(password, salt)
	if err != nil {
		return nil, err
	}
	otp, expiry, err := credentials.GenerateOTP(s.now(), s.otpTTL)
	if err != nil {
		return nil, err
	}

	c := &models.Customer{
		Email:     email,
		Password:  hash,
		Salt:      salt,
		Phone:     phone,
		OTP:       otp,
		OTPExpiry: expiry,
	}
	err = s.repo.Create(ctx, c)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("%w: a customer exists with email %s", ErrConflict, email)
	}
	if err != nil {
		return nil, err
	}
	s.notify.OTP(c.Phone, otp)
	return s.authResult(c)
}

func (s *CustomerService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	c, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: email or password does not match", ErrInvalidCredential)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.ValidatePassword(password, c.Password, c.Salt) {
		return nil, fmt.Errorf("%w: email or password does not match", ErrInvalidCredential)
	}
	return s.authResult(c)
}

// Verify checks the submitted otp against the stored one and marks the
// customer verified. A used code cannot verify twice.
func (s *CustomerService) Verify(ctx context.Context, who Identity, otp int) (*AuthResult, error) {
	c, err := s.profile(ctx, who)
	if err != nil {
		return nil, err
	}
	if !credentials.VerifyOTP(c.OTP, c.OTPExpiry, otp, s.now()) {
		return nil, fmt.Errorf("%w: otp is invalid or expired", ErrInvalidCredential)
	}
	if err := s.repo.MarkVerified(ctx, c.ID); err != nil {
		return nil, err
	}
	c.Verified = true
	c.OTP = 0
	return s.authResult(c)
}

// RequestOTP replaces the stored otp with a fresh one and sends it
func (s *CustomerService) RequestOTP(ctx context.Context, who Identity) error {
	c, err := s.profile(ctx, who)
	if err != nil {
		return err
	}
	otp, expiry, err := credentials.GenerateOTP(s.now(), s.otpTTL)
	if err != nil {
		return err
	}
	if err := s.repo.SetOTP(ctx, c.ID, otp, expiry); err != nil {
		return err
	}
	s.notify.OTP(c.Phone, otp)
	return nil
}

func (s *CustomerService) Profile(ctx context.Context, who Identity) (*models.Customer, error) {
	return s.profile(ctx, who)
}

func (s *CustomerService) EditProfile(ctx context.Context, who Identity, firstName, lastName, address string) (*models.Customer, error) {
	if err := s.repo.UpdateProfile(ctx, who.ActorID, firstName, lastName, address); err != nil {
		return nil, notFound(err, "customer")
	}
	return s.profile(ctx, who)
}

func (s *CustomerService) profile(ctx context.Context, who Identity) (*models.Customer, error) {
	c, err := s.repo.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "customer")
	}
	return c, nil
}

func (s *CustomerService) authResult(c *models.Customer) (*AuthResult, error) {
	token, err := s.issuer.Issue(credentials.Claims{
		ActorID:  c.ID,
		Email:    c.Email,
		Role:     models.RoleCustomer,
		Verified: c.Verified,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Verified: c.Verified, Email: c.Email}, nil
}
