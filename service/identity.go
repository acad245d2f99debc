package service

import "food-marketplace-api/models"

// Identity is the authenticated actor behind a call. It is resolved from the
// session token once and passed explicitly to every service method.
type Identity struct {
	ActorID  string
	Email    string
	Role     models.UserRole
	Verified bool
}
