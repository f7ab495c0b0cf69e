package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error kinds surfaced by the core packages. Controllers map them onto
// HTTP statuses with Status; callers branch with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
)

// NotFound wraps ErrNotFound with a description of the missing record
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// InvalidArgument wraps ErrInvalidArgument with the offending detail
func InvalidArgument(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, detail)
}

// Conflict wraps ErrConflict with the violated precondition
func Conflict(detail string) error {
	return fmt.Errorf("%w: %s", ErrConflict, detail)
}

// Storage wraps a persistence error. Partial effects are rolled back by
// the enclosing transaction, so callers may retry the same logical event.
func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// Status maps an error kind to its HTTP status code
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
