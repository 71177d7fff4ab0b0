package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly-be/internal/apperrors"
	"taskly-be/internal/middleware"
	"taskly-be/internal/validation"
)

// ErrorTranslator is the single place where service and store errors become
// HTTP responses. Anything it doesn't recognize is a 500 whose detail is only
// exposed in development mode.
type ErrorTranslator struct {
	log            *logrus.Logger
	exposeInternal bool
}

// NewErrorTranslator creates the shared error translator.
func NewErrorTranslator(log *logrus.Logger, exposeInternal bool) *ErrorTranslator {
	return &ErrorTranslator{
		log:            log,
		exposeInternal: exposeInternal,
	}
}

// Respond writes the JSON error response for err.
func (t *ErrorTranslator) Respond(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": verr.Fields,
		})
	case errors.Is(err, apperrors.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "User already exists",
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
	case errors.Is(err, apperrors.ErrInvalidToken):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Invalid token",
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	default:
		t.log.WithError(err).Error("internal error")
		body := gin.H{"error": "Internal server error"}
		if t.exposeInternal {
			body["message"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// currentUserID reads the identity the auth middleware attached to the
// request context.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Not authenticated",
		})
		return "", false
	}
	return userID.(string), true
}
