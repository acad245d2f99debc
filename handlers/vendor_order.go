package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/models"
	"food-marketplace-api/service"
	"food-marketplace-api/statemachine"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProcessOrderRequest struct {
	Status    models.OrderStatus `json:"status" binding:"required,order_status"`
	Remarks   *string            `json:"remarks"`
	ReadyTime *int               `json:"readyTime" binding:"omitempty,min=1"`
}

func (h *Handler) GetVendorOrders(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !statemachine.IsValid(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown order status %q", status)})
		return
	}
	orders, err := h.Orders.ListForVendor(c.Request.Context(), who.ActorID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.OrderStatus)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// ExportVendorOrders downloads the vendor's orders as an xlsx workbook
func (h *Handler) ExportVendorOrders(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Orders.ExportForVendor(c.Request.Context(), who.ActorID, &buf); err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) GetVendorOrder(c *gin.Context) {
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

// ProcessOrder moves one of the vendor's orders to a new status
func (h *Handler) ProcessOrder(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req ProcessOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Orders.ProcessOrder(c.Request.Context(), who, c.Param("id"), service.StatusUpdate{
		Status:    req.Status,
		Remarks:   req.Remarks,
		ReadyTime: req.ReadyTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOffers lists the offers applicable to the calling vendor
func (h *Handler) GetOffers(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	offers, err := h.Offers.ApplicableOffers(c.Request.Context(), who.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *Handler) AddOffer(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req service.OfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offer, err := h.Offers.CreateOffer(c.Request.Context(), who, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *Handler) EditOffer(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req service.OfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offer, err := h.Offers.EditOffer(c.Request.Context(), who, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
