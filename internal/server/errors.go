package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/karobarhq/karobar/internal/auth/domain"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	catalogdomain "github.com/karobarhq/karobar/internal/catalog/domain"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
	"github.com/karobarhq/karobar/internal/qr"
	"github.com/karobarhq/karobar/internal/validation"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                  `json:"type"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	vErr := &validation.Error{}
	return vErr.Add("request", "invalid_request", "invalid request")
}

func mapError(err error) (int, errorPayload) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Fields,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, businessdomain.ErrInvalidOwner),
		errors.Is(err, productdomain.ErrInvalidBusiness),
		errors.Is(err, productdomain.ErrInvalidStatus):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	case errors.Is(err, catalogdomain.ErrNoWhatsappNumber):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []validation.FieldError{{
				Field:   "whatsapp_number",
				Code:    "whatsapp_number_missing",
				Message: "add a WhatsApp number before generating a QR code",
			}},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, qr.ErrEncodingFailed):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "encoding_failed",
			Message: "could not generate the QR code, please try again",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, businessdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
