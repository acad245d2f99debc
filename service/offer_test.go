package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"food-marketplace-api/models"
)

func offerInput(kind models.OfferType, title string) OfferInput {
	return OfferInput{
		OfferType:   kind,
		Title:       title,
		OfferAmount: decimal.NewFromInt(50),
		MinValue:    decimal.NewFromInt(200),
		PromoType:   "ALL",
		IsActive:    true,
	}
}

func titles(offers []models.Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Title
	}
	sort.Strings(out)
	return out
}

func TestApplicableOffers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	offers := NewOfferService(f.offers, f.vendors)
	mine := f.vendor(t, "mine@x.com")
	theirs := f.vendor(t, "theirs@x.com")

	for _, tc := range []struct {
		who   Identity
		input OfferInput
	}{
		{mine, offerInput(models.OfferVendor, "mine-vendor")},
		{mine, offerInput(models.OfferGeneric, "mine-generic")},
		{theirs, offerInput(models.OfferVendor, "theirs-vendor")},
		{theirs, offerInput(models.OfferGeneric, "theirs-generic")},
	} {
		if _, err := offers.CreateOffer(ctx, tc.who, tc.input); err != nil {
			t.Fatalf("CreateOffer %s: %v", tc.input.Title, err)
		}
	}

	got, err := offers.ApplicableOffers(ctx, mine.ActorID)
	if err != nil {
		t.Fatal(err)
	}
	// a generic offer that also targets the vendor is listed twice
	want := []string{"mine-generic", "mine-generic", "mine-vendor", "theirs-generic"}
	if have := titles(got); len(have) != len(want) {
		t.Fatalf("expected %v, got %v", want, have)
	} else {
		for i := range want {
			if have[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, have)
			}
		}
	}

	none, err := offers.ApplicableOffers(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if have := titles(none); len(have) != 2 {
		t.Errorf("a vendor with no offers should only see the generic ones, got %v", have)
	}
}

func TestEditOffer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	offers := NewOfferService(f.offers, f.vendors)
	owner := f.vendor(t, "owner@x.com")
	other := f.vendor(t, "other@x.com")

	offer, err := offers.CreateOffer(ctx, owner, offerInput(models.OfferVendor, "first"))
	if err != nil {
		t.Fatal(err)
	}

	edited, err := offers.EditOffer(ctx, owner, offer.ID, offerInput(models.OfferVendor, "second"))
	if err != nil {
		t.Fatalf("EditOffer: %v", err)
	}
	if edited.Title != "second" || !edited.TargetsVendor(owner.ActorID) {
		t.Errorf("unexpected edit result %+v", edited)
	}

	if _, err := offers.EditOffer(ctx, other, offer.ID, offerInput(models.OfferVendor, "hijack")); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := offers.EditOffer(ctx, owner, "missing", offerInput(models.OfferVendor, "x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	bad := offerInput(models.OfferVendor, "free")
	bad.OfferAmount = decimal.Zero
	if _, err := offers.CreateOffer(ctx, owner, bad); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for a zero amount, got %v", err)
	}
}
