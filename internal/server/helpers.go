package server

import (
	"errors"
	"log/slog"
	"strconv"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	msgAuthorNotFound = "Author not found"
	msgPostNotFound   = "Post not found"
)

// parseID extracts a route parameter as a uint. A value that is not an
// integer is a 422. Zero and negative ids can never match a row, so they get
// the 404 notFoundMsg. Either way the response is written and
// errResponseWritten returned.
func (s *Server) parseID(c *fiber.Ctx, param, notFoundMsg string) (uint, error) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	if id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError(notFoundMsg))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseOptionalIntQuery reads an integer query parameter. A missing or empty
// value yields nil; anything else that is not an integer is a 422.
func (s *Server) parseOptionalIntQuery(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid "+key))
		return nil, errResponseWritten
	}
	return &v, nil
}

// bindJSON decodes the request body into out and validates it. Malformed JSON
// and failed validation are both 422.
func (s *Server) bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationErrorWithCause("Invalid request body", err))
		return errResponseWritten
	}
	if err := validation.Validate(out); err != nil {
		_ = models.RespondWithError(c, models.StatusFor(err), err)
		return errResponseWritten
	}
	return nil
}

// respondServiceError writes err with the status of its AppError code.
// Internal failures are logged with the request id.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}
