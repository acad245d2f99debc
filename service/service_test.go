package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"food-marketplace-api/credentials"
	"food-marketplace-api/models"
	"food-marketplace-api/notify"
	"food-marketplace-api/repository"
	"food-marketplace-api/repository/dbtest"
	"food-marketplace-api/statemachine"
)

// fixture wires every service against one in-memory database
type fixture struct {
	db        *gorm.DB
	customers *repository.CustomerRepo
	vendors   *repository.VendorRepo
	foods     *repository.FoodRepo
	orders    *repository.OrderRepo
	offers    *repository.OfferRepo
	admins    *repository.AdminRepo

	issuer     *credentials.Issuer
	hasher     credentials.Hasher
	dispatcher *notify.Dispatcher
	catalog    *Catalog
}

func newFixture(t *testing.T, n notify.Notifier) *fixture {
	t.Helper()
	if n == nil {
		n = notify.NewLog()
	}
	db := dbtest.Open(t)
	f := &fixture{
		db:         db,
		customers:  repository.NewCustomerRepo(db),
		vendors:    repository.NewVendorRepo(db),
		foods:      repository.NewFoodRepo(db),
		orders:     repository.NewOrderRepo(db),
		offers:     repository.NewOfferRepo(db),
		admins:     repository.NewAdminRepo(db),
		issuer:     credentials.NewIssuer("test-secret", time.Hour),
		hasher:     credentials.Hasher{Cost: bcrypt.MinCost},
		dispatcher: notify.NewDispatcher(n, time.Second),
	}
	f.catalog = NewCatalog(f.foods, f.vendors)
	t.Cleanup(f.dispatcher.Wait)
	return f
}

func (f *fixture) customerService() *CustomerService {
	return NewCustomerService(f.customers, f.hasher, f.issuer, f.dispatcher, credentials.DefaultOTPTTL)
}

func (f *fixture) cartService() *CartService {
	return NewCartService(f.customers, f.catalog)
}

func (f *fixture) orderService(policy statemachine.Policy) *OrderService {
	return NewOrderService(f.customers, f.orders, f.catalog, f.dispatcher, policy, DefaultReadyTime)
}

func (f *fixture) customer(t *testing.T, email string) Identity {
	t.Helper()
	c := &models.Customer{Email: email, Phone: "555", Password: "h", Salt: "s"}
	if err := f.customers.Create(context.Background(), c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return Identity{ActorID: c.ID, Email: c.Email, Role: models.RoleCustomer}
}

func (f *fixture) vendor(t *testing.T, email string) Identity {
	t.Helper()
	v := &models.Vendor{Name: "Vendor " + email, Email: email, Pincode: "400001", Password: "h", Salt: "s", ServiceAvailable: true}
	if err := f.vendors.Create(context.Background(), v); err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return Identity{ActorID: v.ID, Email: v.Email, Role: models.RoleVendor}
}

func (f *fixture) food(t *testing.T, vendor Identity, name, price string) *models.Food {
	t.Helper()
	food := &models.Food{VendorID: vendor.ActorID, Name: name, Price: decimal.RequireFromString(price), ReadyTime: 20}
	if err := f.foods.Create(context.Background(), food); err != nil {
		t.Fatalf("create food: %v", err)
	}
	return food
}
