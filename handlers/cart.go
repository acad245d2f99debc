package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/service"
)

type CartRequest struct {
	FoodID string `json:"foodId" binding:"required"`
	Unit   int    `json:"unit"`
}

type CreateOrderRequest struct {
	Items     []service.OrderLine `json:"items" binding:"required,min=1,dive"`
	ReadyTime *int                `json:"readyTime" binding:"omitempty,min=1"`
}

// AddToCart sets the unit of a food in the cart; a unit of 0 or less removes it
func (h *Handler) AddToCart(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.Carts.UpsertLine(c.Request.Context(), who, req.FoodID, req.Unit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) GetCart(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	cart, err := h.Carts.GetCart(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) DeleteCart(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	cart, err := h.Carts.ClearCart(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// CreateOrder places an order priced from the catalog and empties the cart
func (h *Handler) CreateOrder(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Orders.CreateOrder(c.Request.Context(), who, req.Items, req.ReadyTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetCustomerOrders(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	orders, err := h.Orders.ListForCustomer(c.Request.Context(), who.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID returns one order of the caller
func (h *Handler) GetOrderByID(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	order, err := h.Orders.OrderFor(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
