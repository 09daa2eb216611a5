package presenter

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvdesk/pkg/cv"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// StatusOf maps domain errors onto HTTP statuses.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, cv.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, cv.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cv.ErrQuotaExceeded):
		return http.StatusConflict
	case errors.Is(err, cv.ErrBatchTooLarge), errors.Is(err, cv.ErrNoFiles),
		errors.Is(err, cv.ErrInvalidLimit):
		return http.StatusBadRequest
	case errors.Is(err, cv.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, cv.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// DomainError writes err with its mapped status. Unknown errors are logged and hidden.
func DomainError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return Error(c, status, "internal error")
	}
	return Error(c, status, err.Error())
}
