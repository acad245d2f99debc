package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"food-marketplace-api/models"
)

func TestAdminCreatesVendorThatCanLogIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admins := NewAdminService(f.admins, f.vendors, f.hasher, f.issuer)
	vendors := NewVendorService(f.vendors, f.foods, f.hasher, f.issuer)

	if err := admins.EnsureAdmin(ctx, "root@x.com", "secret"); err != nil {
		t.Fatal(err)
	}
	if err := admins.EnsureAdmin(ctx, "root@x.com", "secret"); err != nil {
		t.Fatalf("seeding twice should be a no-op: %v", err)
	}
	if _, err := admins.Login(ctx, "root@x.com", "secret"); err != nil {
		t.Errorf("admin Login: %v", err)
	}

	in := VendorInput{
		Name:      "Udupi Corner",
		OwnerName: "Ravi",
		FoodTypes: []string{"veg"},
		Pincode:   "560001",
		Phone:     "999",
		Email:     "udupi@x.com",
		Password:  "tiffin123",
	}
	v, err := admins.CreateVendor(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if v.Password == in.Password || v.Salt == "" {
		t.Error("vendor password must be stored salted and hashed")
	}
	if _, err := admins.CreateVendor(ctx, in); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	token, err := vendors.Login(ctx, in.Email, in.Password)
	if err != nil {
		t.Fatalf("vendor Login: %v", err)
	}
	claims, err := f.issuer.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != models.RoleVendor || claims.Name != "Udupi Corner" || len(claims.FoodTypes) != 1 {
		t.Errorf("unexpected vendor claims %+v", claims)
	}
	if _, err := vendors.Login(ctx, in.Email, "nope"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestVendorProfileAndFoods(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	vendors := NewVendorService(f.vendors, f.foods, f.hasher, f.issuer)
	who := f.vendor(t, "v@x.com")

	v, err := vendors.ToggleService(ctx, who)
	if err != nil {
		t.Fatal(err)
	}
	if v.ServiceAvailable {
		t.Error("toggle should switch an available vendor off")
	}

	v, err = vendors.AddCoverImages(ctx, who, []string{"1_front.png"})
	if err != nil || len(v.CoverImages) != 1 {
		t.Fatalf("AddCoverImages: %+v, %v", v, err)
	}

	v, err = vendors.AddFood(ctx, who, FoodInput{Name: "Masala Dosa", Price: decimal.RequireFromString("80"), ReadyTime: 15}, []string{"dosa.png"})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Foods) != 1 || v.Foods[0].Images[0] != "dosa.png" {
		t.Errorf("food not attached to the vendor: %+v", v.Foods)
	}

	if _, err := vendors.AddFood(ctx, who, FoodInput{Name: "Free"}, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for a food without a price, got %v", err)
	}

	v, err = vendors.UpdateProfile(ctx, who, "New Name", "Addr", "111", []string{"veg", "jain"})
	if err != nil || v.Name != "New Name" || len(v.FoodTypes) != 2 {
		t.Errorf("UpdateProfile: %+v, %v", v, err)
	}
}

func TestImportFoods(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	vendors := NewVendorService(f.vendors, f.foods, f.hasher, f.issuer)
	who := f.vendor(t, "v@x.com")

	xlsx := excelize.NewFile()
	rows := [][]interface{}{
		{"name", "description", "category", "foodType", "readyTime", "price"},
		{"Idli", "steamed", "breakfast", "veg", "10", "40"},
		{"Free Lunch", "", "main", "veg", "5", "0"},
		{"Vada", "crisp", "breakfast", "veg", "12", "35.50"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := xlsx.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if _, err := xlsx.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	xlsx.Close()

	res, err := vendors.ImportFoods(ctx, who, &buf)
	if err != nil {
		t.Fatalf("ImportFoods: %v", err)
	}
	if len(res.Foods) != 2 || len(res.SkippedRows) != 1 || res.SkippedRows[0] != 3 {
		t.Errorf("unexpected import result: %d foods, skipped %v", len(res.Foods), res.SkippedRows)
	}
	foods, _ := vendors.Foods(ctx, who)
	if len(foods) != 2 {
		t.Errorf("expected 2 stored foods, got %d", len(foods))
	}

	if _, err := vendors.ImportFoods(ctx, who, bytes.NewBufferString("junk")); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for a non-xlsx upload, got %v", err)
	}
}

func TestCatalogShopping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	who := f.vendor(t, "v@x.com")
	f.food(t, who, "Chai", "15")

	vendors, err := f.catalog.AvailableVendors(ctx, "400001")
	if err != nil || len(vendors) != 1 {
		t.Fatalf("AvailableVendors: %+v, %v", vendors, err)
	}
	foods, err := f.catalog.FoodsIn30Min(ctx, "400001")
	if err != nil || len(foods) != 1 {
		t.Errorf("FoodsIn30Min: %+v, %v", foods, err)
	}
	if _, err := f.catalog.Restaurant(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

