package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyRequest struct {
	OTP int `json:"otp" binding:"required"`
}

type EditProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// CustomerSignUp creates a customer account and sends its first OTP
func (h *Handler) CustomerSignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Customers.SignUp(c.Request.Context(), req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) CustomerLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondLoginError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CustomerVerify(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Customers.Verify(c.Request.Context(), who, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RequestOTP issues a fresh OTP to the customer's phone
func (h *Handler) RequestOTP(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Customers.RequestOTP(c.Request.Context(), who); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your registered phone number!"})
}

func (h *Handler) GetCustomerProfile(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	customer, err := h.Customers.Profile(c.Request.Context(), who)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) EditCustomerProfile(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.Customers.EditProfile(c.Request.Context(), who, req.FirstName, req.LastName, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
