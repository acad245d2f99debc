package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"food-marketplace-api/service"
)

type VendorProfileRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address" binding:"required"`
	Phone     string   `json:"phone" binding:"required"`
	FoodTypes []string `json:"foodTypes"`
}

// FoodForm is the multipart body of an add-food request
type FoodForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Category    string `form:"category"`
	FoodType    string `form:"foodType"`
	ReadyTime   int    `form:"readyTime" binding:"min=0"`
	Price       string `form:"price" binding:"required"`
}

func (h *Handler) VendorLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.Vendors.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondLoginError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) GetVendorProfile(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	vendor, err := h.Vendors.Profile(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *Handler) UpdateVendorProfile(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req VendorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vendor, err := h.Vendors.UpdateProfile(c.Request.Context(), who, req.Name, req.Address, req.Phone, req.FoodTypes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// UpdateVendorService toggles whether the vendor accepts orders
func (h *Handler) UpdateVendorService(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	vendor, err := h.Vendors.ToggleService(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *Handler) UpdateVendorCoverImage(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	images, ok := h.saveImages(c)
	if !ok {
		return
	}
	vendor, err := h.Vendors.AddCoverImages(c.Request.Context(), who, images)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// AddFood adds a food with its images to the vendor's menu
func (h *Handler) AddFood(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var form FoodForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a decimal number"})
		return
	}
	images, ok := h.saveImages(c)
	if !ok {
		return
	}
	vendor, err := h.Vendors.AddFood(c.Request.Context(), who, service.FoodInput{
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		FoodType:    form.FoodType,
		ReadyTime:   form.ReadyTime,
		Price:       price,
	}, images)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (h *Handler) GetFoods(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	foods, err := h.Vendors.Foods(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// ImportFoods adds every valid row of an uploaded xlsx menu
func (h *Handler) ImportFoods(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer f.Close()

	res, err := h.Vendors.ImportFoods(c.Request.Context(), who, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
