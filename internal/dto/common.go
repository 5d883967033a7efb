package dto

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
)

// Envelope is the uniform success payload shape.
type Envelope struct {
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
	Timestamp  string      `json:"timestamp"`
	Paging     *Paging     `json:"paging,omitempty"`
}

type Paging struct {
	CurrentPage int `json:"current_page"`
	Size        int `json:"size"`
	TotalPage   int `json:"total_page"`
}

func NewPaging(page, limit int, total int64) *Paging {
	totalPage := int(math.Ceil(float64(total) / float64(limit)))
	return &Paging{CurrentPage: page, Size: limit, TotalPage: totalPage}
}

// ErrorEnvelope is the uniform failure payload shape.
type ErrorEnvelope struct {
	Success   bool                `json:"success"`
	Errors    []apperr.FieldError `json:"errors"`
	Timestamp string              `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func JSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Data:       data,
		StatusCode: status,
		Timestamp:  now(),
	})
}

func JSONPaged(c *fiber.Ctx, status int, data interface{}, paging *Paging) error {
	return c.Status(status).JSON(Envelope{
		Data:       data,
		StatusCode: status,
		Timestamp:  now(),
		Paging:     paging,
	})
}

// PageParams reads page/limit query params with defaults and caps.
func PageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// Error translates a service error into the transport envelope. Unknown
// errors are logged with detail and surfaced as a generic 500.
func Error(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Internal("internal server error", err)
	}

	status := fiber.StatusInternalServerError
	switch e.Kind {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
	case apperr.KindConflict:
		status = fiber.StatusConflict
	}

	fields := e.Fields
	if len(fields) == 0 {
		message := e.Message
		if e.Kind == apperr.KindInternal {
			slog.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error(),
			)
			message = "Internal server error"
		}
		fields = []apperr.FieldError{{Message: message}}
	}

	return c.Status(status).JSON(ErrorEnvelope{
		Success:   false,
		Errors:    fields,
		Timestamp: now(),
	})
}
