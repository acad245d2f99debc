package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/filestore"
	"food-marketplace-api/middleware"
	"food-marketplace-api/service"
	"food-marketplace-api/statemachine"
)

// Handler holds the services every route group talks to
type Handler struct {
	Customers *service.CustomerService
	Carts     *service.CartService
	Orders    *service.OrderService
	Offers    *service.OfferService
	Vendors   *service.VendorService
	Admins    *service.AdminService
	Catalog   *service.Catalog
	Files     filestore.Store
	Policy    statemachine.Policy
}

// identity reads the caller set by middleware.AuthRequired. Routes without
// that middleware never reach a handler calling this.
func identity(c *gin.Context) (service.Identity, bool) {
	who, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	}
	return who, ok
}

// saveImages stores every file of the multipart field "images"
func (h *Handler) saveImages(c *gin.Context) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form with images required"})
		return nil, false
	}
	names := []string{}
	for _, fh := range form.File["images"] {
		name, err := h.Files.Save(fh)
		if err != nil {
			respondError(c, err)
			return nil, false
		}
		names = append(names, name)
	}
	return names, true
}
