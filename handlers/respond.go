package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"food-marketplace-api/service"
	"food-marketplace-api/statemachine"
)

// respondError maps a service error to its HTTP status and writes {"error": message}
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, statemachine.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredential), errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s %s] internal error: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}

// respondLoginError reports a credential mismatch on login as 404
func respondLoginError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidCredential) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	respondError(c, err)
}
