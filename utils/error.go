package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultly/models"
)

// JSONError writes a reason-coded error payload.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// RespondError maps a domain error onto the HTTP surface. Reason codes are
// the contract; statuses are presentation.
func RespondError(c *gin.Context, err error) {
	var re *models.ReasonError
	if !errors.As(err, &re) {
		GetLogger().Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
		JSONError(c, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch re {
	case models.ErrNotFound:
		status = http.StatusNotFound
	case models.ErrSlotTaken, models.ErrInvalidTransition:
		status = http.StatusConflict
	case models.ErrOutsideAvailability, models.ErrConsultantUnavailable,
		models.ErrTooEarly, models.ErrInvalidDuration:
		status = http.StatusUnprocessableEntity
	case models.ErrInvalidTimezone, models.ErrInvalidWindow:
		status = http.StatusBadRequest
	case models.ErrBusy:
		status = http.StatusServiceUnavailable
		c.Header("Retry-After", "1")
	}
	JSONError(c, status, re.Code, re.Message)
}

// ErrorHandler recovers panics into a JSON 500 instead of a dropped
// connection.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("panic recovered", zap.Any("panic", r), zap.String("path", c.FullPath()))
				JSONError(c, http.StatusInternalServerError, "internal", "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
