package service

import (
	"context"
	"errors"
	"fmt"

	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

// cartAttempts bounds the retries after losing an optimistic version race
const cartAttempts = 3

type CartService struct {
	customers *repository.CustomerRepo
	catalog   FoodLookup
}

func NewCartService(customers *repository.CustomerRepo, catalog FoodLookup) *CartService {
	return &CartService{customers: customers, catalog: catalog}
}

// UpsertLine sets the unit of foodID in the customer's cart. A positive
// unit replaces an existing line in place or appends a new one; a unit of
// zero or less removes the line.
func (s *CartService) UpsertLine(ctx context.Context, who Identity, foodID string, unit int) (models.CartLines, error) {
	food, err := s.catalog.Food(ctx, foodID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < cartAttempts; attempt++ {
		c, err := s.customers.ByID(ctx, who.ActorID)
		if err != nil {
			return nil, notFound(err, "customer")
		}
		lines, changed := upsertLine(c.Cart, *food, unit)
		if !changed {
			return lines, nil
		}
		err = s.customers.UpdateCart(ctx, c.ID, c.CartVersion, lines)
		if errors.Is(err, repository.ErrStaleCart) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return lines, nil
	}
	return nil, fmt.Errorf("%w: cart is being modified concurrently, try again", ErrConflict)
}

func (s *CartService) GetCart(ctx context.Context, who Identity) (models.CartLines, error) {
	c, err := s.customers.ByID(ctx, who.ActorID)
	if err != nil {
		return nil, notFound(err, "customer")
	}
	if c.Cart == nil {
		return models.CartLines{}, nil
	}
	return c.Cart, nil
}

// ClearCart empties the cart. Clearing an empty cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, who Identity) (models.CartLines, error) {
	for attempt := 0; attempt < cartAttempts; attempt++ {
		c, err := s.customers.ByID(ctx, who.ActorID)
		if err != nil {
			return nil, notFound(err, "customer")
		}
		if len(c.Cart) == 0 {
			return models.CartLines{}, nil
		}
		err = s.customers.UpdateCart(ctx, c.ID, c.CartVersion, models.CartLines{})
		if errors.Is(err, repository.ErrStaleCart) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return models.CartLines{}, nil
	}
	return nil, fmt.Errorf("%w: cart is being modified concurrently, try again", ErrConflict)
}

// upsertLine returns the new line sequence and whether it differs from the
// input. The input slice is never modified.
func upsertLine(lines models.CartLines, food models.Food, unit int) (models.CartLines, bool) {
	out := make(models.CartLines, 0, len(lines)+1)
	found := false
	for _, l := range lines {
		if l.FoodID != food.ID {
			out = append(out, l)
			continue
		}
		found = true
		if unit > 0 {
			out = append(out, models.CartLine{FoodID: food.ID, Unit: unit, Food: food.Snapshot()})
		}
	}
	switch {
	case found:
		return out, true
	case unit > 0:
		return append(out, models.CartLine{FoodID: food.ID, Unit: unit, Food: food.Snapshot()}), true
	default:
		return out, false
	}
}
