package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"food-marketplace-api/notify"
)

func TestSignUpSendsOTPAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	n := notify.NewMockNotifier(ctrl)
	n.EXPECT().SendOTP(gomock.Any(), "555", gomock.Any()).Return(nil)

	f := newFixture(t, n)
	customers := f.customerService()

	res, err := customers.SignUp(ctx, "a@b.com", "555", "pw")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if res.Token == "" || res.Verified || res.Email != "a@b.com" {
		t.Errorf("unexpected signup result %+v", res)
	}
	claims, err := f.issuer.Verify(res.Token)
	if err != nil || claims.Email != "a@b.com" || claims.Verified {
		t.Errorf("unexpected claims %+v, %v", claims, err)
	}

	if _, err := customers.SignUp(ctx, "a@b.com", "777", "other"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	f.dispatcher.Wait()
}

func TestConcurrentSignUpConflicts(t *testing.T) {
	ctx := context.Background()
	customers := newFixture(t, nil).customerService()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = customers.SignUp(ctx, "race@b.com", fmt.Sprint(i), "pw")
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrConflict):
			t.Errorf("expected ErrConflict for a losing signup, got %v", err)
		}
	}
	if created != 1 {
		t.Errorf("expected exactly one signup to succeed, got %d", created)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	customers := f.customerService()
	if _, err := customers.SignUp(ctx, "a@b.com", "555", "pw"); err != nil {
		t.Fatal(err)
	}

	if _, err := customers.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, err := customers.Login(ctx, "a@b.com", "wrong"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for a wrong password, got %v", err)
	}
	if _, err := customers.Login(ctx, "x@y.com", "pw"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for an unknown email, got %v", err)
	}
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	customers := f.customerService()
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	customers.now = func() time.Time { return start }

	res, err := customers.SignUp(ctx, "a@b.com", "555", "pw")
	if err != nil {
		t.Fatal(err)
	}
	claims, _ := f.issuer.Verify(res.Token)
	who := Identity{ActorID: claims.ActorID, Email: claims.Email, Role: claims.Role}

	stored, _ := f.customers.ByID(ctx, who.ActorID)
	if stored.OTP < 100000 || stored.OTP > 999999 {
		t.Fatalf("expected a 6 digit otp, got %d", stored.OTP)
	}

	if _, err := customers.Verify(ctx, who, stored.OTP+1); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for a wrong otp, got %v", err)
	}

	customers.now = func() time.Time { return start.Add(31 * time.Minute) }
	if _, err := customers.Verify(ctx, who, stored.OTP); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for an expired otp, got %v", err)
	}

	customers.now = func() time.Time { return start.Add(30 * time.Minute) }
	verified, err := customers.Verify(ctx, who, stored.OTP)
	if err != nil {
		t.Fatalf("Verify at expiry: %v", err)
	}
	if !verified.Verified {
		t.Error("expected verified result")
	}
	if claims, _ := f.issuer.Verify(verified.Token); !claims.Verified {
		t.Error("expected a verified token")
	}

	if _, err := customers.Verify(ctx, who, stored.OTP); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("a used otp must not verify again, got %v", err)
	}
}

func TestRequestOTPReplacesCode(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	n := notify.NewMockNotifier(ctrl)
	n.EXPECT().SendOTP(gomock.Any(), "555", gomock.Any()).Return(nil).Times(2)

	f := newFixture(t, n)
	customers := f.customerService()
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	customers.now = func() time.Time { return start }

	res, err := customers.SignUp(ctx, "a@b.com", "555", "pw")
	if err != nil {
		t.Fatal(err)
	}
	claims, _ := f.issuer.Verify(res.Token)
	who := Identity{ActorID: claims.ActorID, Role: claims.Role}

	customers.now = func() time.Time { return start.Add(time.Hour) }
	if err := customers.RequestOTP(ctx, who); err != nil {
		t.Fatal(err)
	}
	stored, _ := f.customers.ByID(ctx, who.ActorID)
	if !stored.OTPExpiry.Equal(start.Add(time.Hour + 30*time.Minute)) {
		t.Errorf("unexpected expiry %s", stored.OTPExpiry)
	}
	if _, err := customers.Verify(ctx, who, stored.OTP); err != nil {
		t.Errorf("fresh otp should verify: %v", err)
	}
	f.dispatcher.Wait()
}

func TestEditProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	customers := f.customerService()
	who := f.customer(t, "a@b.com")

	c, err := customers.EditProfile(ctx, who, "Asha", "Rao", "12 MG Road")
	if err != nil {
		t.Fatal(err)
	}
	if c.FirstName != "Asha" || c.LastName != "Rao" || c.Address != "12 MG Road" {
		t.Errorf("profile not updated: %+v", c)
	}
	if _, err := customers.Profile(ctx, Identity{ActorID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
