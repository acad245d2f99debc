package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/service"
)

func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.Admins.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondLoginError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateVendor onboards a vendor account (admin only)
func (h *Handler) CreateVendor(c *gin.Context) {
	var req service.VendorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vendor, err := h.Admins.CreateVendor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (h *Handler) GetVendors(c *gin.Context) {
	vendors, err := h.Admins.Vendors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(vendors), "vendors": vendors})
}

func (h *Handler) GetVendorByID(c *gin.Context) {
	vendor, err := h.Admins.Vendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}
