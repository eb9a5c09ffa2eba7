package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"keepsake-be/internal/models"
)

// badRequest writes a single aggregated 400 response for a failed request
// binding. When the failure comes from declared validation rules, every
// failing field is reported.
func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]models.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, models.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  fields,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "invalid request body",
	})
}

// fieldMessage maps a validation tag to a human-readable message
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

// fail writes an error response. Raw error detail is only exposed in
// development mode.
func fail(c *gin.Context, status int, message string, err error, dev bool) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if dev && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// parseID validates the :id path parameter as a UUID. Malformed ids are
// indistinguishable from absent records to the caller.
func parseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
