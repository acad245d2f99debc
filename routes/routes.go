package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"food-marketplace-api/credentials"
	"food-marketplace-api/filestore"
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/notify"
	"food-marketplace-api/repository"
	"food-marketplace-api/service"
	"food-marketplace-api/statemachine"
)

// Deps is everything the router needs that is built outside of it
type Deps struct {
	DB          *gorm.DB
	Issuer      *credentials.Issuer
	Hasher      credentials.Hasher
	Dispatcher  *notify.Dispatcher
	Files       filestore.Store
	Policy      statemachine.Policy
	ReadyTime   int
	OTPTTL      time.Duration
	CORSOrigins []string
}

// NewHandler wires repositories and services into a handler set
func NewHandler(d Deps) *handlers.Handler {
	customers := repository.NewCustomerRepo(d.DB)
	vendors := repository.NewVendorRepo(d.DB)
	foods := repository.NewFoodRepo(d.DB)
	orders := repository.NewOrderRepo(d.DB)
	offers := repository.NewOfferRepo(d.DB)
	admins := repository.NewAdminRepo(d.DB)

	catalog := service.NewCatalog(foods, vendors)
	return &handlers.Handler{
		Customers: service.NewCustomerService(customers, d.Hasher, d.Issuer, d.Dispatcher, d.OTPTTL),
		Carts:     service.NewCartService(customers, catalog),
		Orders:    service.NewOrderService(customers, orders, catalog, d.Dispatcher, d.Policy, d.ReadyTime),
		Offers:    service.NewOfferService(offers, vendors),
		Vendors:   service.NewVendorService(vendors, foods, d.Hasher, d.Issuer),
		Admins:    service.NewAdminService(admins, vendors, d.Hasher, d.Issuer),
		Catalog:   catalog,
		Files:     d.Files,
		Policy:    d.Policy,
	}
}

// New builds the gin engine with every route group registered
func New(d Deps, h *handlers.Handler) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.Default()
	r.Use(cors.New(corsConfig(d.CORSOrigins)))
	r.Use(middleware.Tracing())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Marketplace API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍔 Welcome to the Food Marketplace API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "vendor", "admin"},
		})
	})

	SetupRoutes(r, d.Issuer, h)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func SetupRoutes(r *gin.Engine, issuer *credentials.Issuer, h *handlers.Handler) {
	auth := middleware.AuthRequired(issuer)

	// ── Public routes ──────────────────────────────────────────────
	r.GET("/api/state-machine", h.GetStateMachineInfo)

	shopping := r.Group("/shopping")
	{
		shopping.GET("/:pincode", h.GetFoodAvailability)
		shopping.GET("/foods-in-30-min/:pincode", h.GetFoodsIn30Min)
		shopping.GET("/restaurant/:id", h.GetRestaurant)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/customer")
	{
		customer.POST("/signup", h.CustomerSignUp)
		customer.POST("/login", h.CustomerLogin)
	}
	customerAuth := customer.Group("")
	customerAuth.Use(auth, middleware.RoleRequired(models.RoleCustomer))
	{
		customerAuth.PATCH("/verify", h.CustomerVerify)
		customerAuth.GET("/otp", h.RequestOTP)
		customerAuth.GET("/profile", h.GetCustomerProfile)
		customerAuth.PATCH("/profile", h.EditCustomerProfile)

		customerAuth.POST("/cart", h.AddToCart)
		customerAuth.GET("/cart", h.GetCart)
		customerAuth.DELETE("/cart", h.DeleteCart)

		customerAuth.POST("/create-order", h.CreateOrder)
		customerAuth.GET("/orders", h.GetCustomerOrders)
		customerAuth.GET("/order/:id", h.GetOrderByID)
	}

	// ── Vendor routes ──────────────────────────────────────────────
	vendor := r.Group("/vendor")
	vendor.POST("/login", h.VendorLogin)
	vendorAuth := vendor.Group("")
	vendorAuth.Use(auth, middleware.RoleRequired(models.RoleVendor))
	{
		vendorAuth.GET("/profile", h.GetVendorProfile)
		vendorAuth.PATCH("/profile", h.UpdateVendorProfile)
		vendorAuth.PATCH("/service", h.UpdateVendorService)
		vendorAuth.PATCH("/coverimage", h.UpdateVendorCoverImage)

		// Menu management
		vendorAuth.POST("/food", h.AddFood)
		vendorAuth.GET("/foods", h.GetFoods)
		vendorAuth.POST("/foods/import", h.ImportFoods)

		// Order management
		vendorAuth.GET("/orders", h.GetVendorOrders)
		vendorAuth.GET("/orders/export", h.ExportVendorOrders)
		vendorAuth.GET("/order/:id", h.GetVendorOrder)
		vendorAuth.PUT("/order/:id/process", h.ProcessOrder)

		// Offers
		vendorAuth.GET("/offer", h.GetOffers)
		vendorAuth.POST("/offer", h.AddOffer)
		vendorAuth.PUT("/offer/:id", h.EditOffer)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.POST("/login", h.AdminLogin)
	adminAuth := admin.Group("")
	adminAuth.Use(auth, middleware.RoleRequired(models.RoleAdmin))
	{
		adminAuth.POST("/vendor", h.CreateVendor)
		adminAuth.GET("/vendors", h.GetVendors)
		adminAuth.GET("/vendor/:id", h.GetVendorByID)
	}
}
