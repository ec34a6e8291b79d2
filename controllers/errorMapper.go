package controllers

import (
	"errors"
	"log"
	"net/http"

	"tastymeal-backend/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors are logged and surfaced as a generic server error.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrInvalidScheduling):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrLedgerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrMealTimeMismatch),
		errors.Is(err, services.ErrNotAvailableForPreOrder),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrPartialNotPermitted),
		errors.Is(err, services.ErrAmountExceedsBalance):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Println("unexpected error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func callerFromContext(c *gin.Context) services.Caller {
	return services.Caller{
		Role:   c.GetString("user_role"),
		UserID: c.GetString("uid"),
	}
}
