package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/statemachine"
)

// GetFoodAvailability lists the vendors serving a pincode (public)
func (h *Handler) GetFoodAvailability(c *gin.Context) {
	vendors, err := h.Catalog.AvailableVendors(c.Request.Context(), c.Param("pincode"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(vendors) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurants serve this pincode"})
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// GetFoodsIn30Min lists foods in a pincode that are ready within 30 minutes (public)
func (h *Handler) GetFoodsIn30Min(c *gin.Context) {
	foods, err := h.Catalog.FoodsIn30Min(c.Request.Context(), c.Param("pincode"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(foods) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No foods ready within 30 minutes for this pincode"})
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (h *Handler) GetRestaurant(c *gin.Context) {
	vendor, err := h.Catalog.Restaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// GetStateMachineInfo describes the order statuses and the active transition policy
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	policy := "permissive"
	if h.Policy.Strict {
		policy = "strict"
	}
	c.JSON(http.StatusOK, gin.H{
		"statuses":        statemachine.Statuses,
		"policy":          policy,
		"transitions":     h.Policy.Transitions(),
		"terminal_states": []string{"Delivered", "Cancelled"},
		"description":     "Food Marketplace Order Lifecycle State Machine",
	})
}
