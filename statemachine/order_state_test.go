package statemachine

import (
	"errors"
	"testing"

	"food-marketplace-api/models"
)

func TestPermissivePolicy(t *testing.T) {
	var p Policy
	for _, from := range Statuses {
		for _, to := range Statuses {
			if err := p.CanTransition(from, to); err != nil {
				t.Errorf("%s -> %s: unexpected error %v", from, to, err)
			}
		}
	}
	if err := p.CanTransition(models.StatusWaiting, "Lost"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
	if p.Transitions() != nil {
		t.Error("permissive policy should not expose a table")
	}
}

func TestStrictPolicy(t *testing.T) {
	p := Policy{Strict: true}
	tests := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusWaiting, models.StatusReceived, true},
		{models.StatusWaiting, models.StatusCancelled, true},
		{models.StatusReceived, models.StatusCooking, true},
		{models.StatusCooking, models.StatusReady, true},
		{models.StatusReady, models.StatusDispatched, true},
		{models.StatusDispatched, models.StatusDelivered, true},
		{models.StatusWaiting, models.StatusDelivered, false},
		{models.StatusReady, models.StatusCancelled, false},
		{models.StatusDelivered, models.StatusWaiting, false},
	}
	for _, tc := range tests {
		err := p.CanTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}

	if next := p.ValidTransitionsFrom(models.StatusDelivered); len(next) != 0 {
		t.Errorf("Delivered should be terminal, got %v", next)
	}
	if next := p.ValidTransitionsFrom(models.StatusCooking); len(next) != 2 {
		t.Errorf("expected Ready and Cancelled from Cooking, got %v", next)
	}
}
