package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain"
	"tourbook/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Field-level
// validation failures ship the whole accumulated map under "errors";
// internal errors are logged but never leak details to the client.
func RespondDomainError(c *gin.Context, err error) {
	if fields, ok := domain.AsFieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation failed",
			"code":       "validation_error",
			"errors":     fields,
			"request_id": middleware.GetRequestID(c),
		})
		return
	}
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		log.Printf("[ERROR] request_id=%s err=%v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
