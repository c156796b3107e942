package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kalan.app/gestionscolaire/pkg/apperror"
)

// Envelope is the uniform response body: a success flag, a human-readable
// message, the payload and, for validation failures, per-field errors.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error converts a domain error into the envelope. Internal errors are
// logged with their cause and replaced by a generic message so exception
// text never reaches the caller.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[erreur interne] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = apperror.ErrInterne.Error()
	}

	c.JSON(code, Envelope{
		Success: false,
		Message: message,
		Errors:  apperror.Details(err),
	})
}
