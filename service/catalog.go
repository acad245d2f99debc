package service

import (
	"context"

	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

// FoodLookup resolves food records for carts and orders
type FoodLookup interface {
	Food(ctx context.Context, id string) (*models.Food, error)
	Foods(ctx context.Context, ids []string) (map[string]models.Food, error)
}

// Catalog is the read-only view over vendors and their foods
type Catalog struct {
	foods   *repository.FoodRepo
	vendors *repository.VendorRepo
}

func NewCatalog(foods *repository.FoodRepo, vendors *repository.VendorRepo) *Catalog {
	return &Catalog{foods: foods, vendors: vendors}
}

func (c *Catalog) Food(ctx context.Context, id string) (*models.Food, error) {
	f, err := c.foods.ByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "food "+id)
	}
	return f, nil
}

// Foods resolves the distinct ids in one query so an order is priced
// against a single snapshot of the catalog
func (c *Catalog) Foods(ctx context.Context, ids []string) (map[string]models.Food, error) {
	seen := make(map[string]bool, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	foods, err := c.foods.ByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Food, len(foods))
	for _, f := range foods {
		out[f.ID] = f
	}
	return out, nil
}

// Restaurant returns a vendor with its menu
func (c *Catalog) Restaurant(ctx context.Context, id string) (*models.Vendor, error) {
	v, err := c.vendors.WithFoods(ctx, id)
	if err != nil {
		return nil, notFound(err, "restaurant "+id)
	}
	return v, nil
}

// AvailableVendors lists vendors serving the pincode right now
func (c *Catalog) AvailableVendors(ctx context.Context, pincode string) ([]models.Vendor, error) {
	return c.vendors.AvailableIn(ctx, pincode)
}

// FoodsIn30Min lists foods in the pincode that are ready within half an hour
func (c *Catalog) FoodsIn30Min(ctx context.Context, pincode string) ([]models.Food, error) {
	return c.foods.ReadyWithin(ctx, pincode, 30)
}
