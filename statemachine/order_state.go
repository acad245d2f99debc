package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"food-marketplace-api/models"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Statuses is the closed set of order states, in lifecycle order
var Statuses = []models.OrderStatus{
	models.StatusWaiting,
	models.StatusReceived,
	models.StatusCooking,
	models.StatusReady,
	models.StatusDispatched,
	models.StatusDelivered,
	models.StatusCancelled,
}

// Transition defines a state change allowed under the strict policy
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// strictTransitions is the lifecycle used when strict mode is switched on
var strictTransitions = []Transition{
	{From: models.StatusWaiting, To: models.StatusReceived},
	{From: models.StatusWaiting, To: models.StatusCancelled},
	{From: models.StatusReceived, To: models.StatusCooking},
	{From: models.StatusReceived, To: models.StatusCancelled},
	{From: models.StatusCooking, To: models.StatusReady},
	{From: models.StatusCooking, To: models.StatusCancelled},
	{From: models.StatusReady, To: models.StatusDispatched},
	{From: models.StatusDispatched, To: models.StatusDelivered},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range strictTransitions {
		m[t] = true
	}
	return m
}()

// IsValid reports whether s belongs to the closed status set
func IsValid(s models.OrderStatus) bool {
	for _, known := range Statuses {
		if known == s {
			return true
		}
	}
	return false
}

// Policy decides whether a vendor may move an order between two states.
// The zero value is permissive: any known status may follow any other.
type Policy struct {
	Strict bool
}

// CanTransition checks the target is a known status and, in strict mode,
// that the change is part of the lifecycle table.
func (p Policy) CanTransition(from, to models.OrderStatus) error {
	if !IsValid(to) {
		return fmt.Errorf("%w %q. Valid statuses are: %s", ErrUnknownStatus, to, join(Statuses))
	}
	if !p.Strict || transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed. Valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

// ValidTransitionsFrom returns the next states reachable from status
func (p Policy) ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	if !p.Strict {
		return Statuses
	}
	return strictNext(status)
}

// Transitions returns the transition table the policy enforces, nil when permissive
func (p Policy) Transitions() []Transition {
	if !p.Strict {
		return nil
	}
	return strictTransitions
}

func strictNext(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range strictTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := strictNext(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	return join(nexts)
}

func join(statuses []models.OrderStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
