package server

import (
	"errors"
	"log/slog"
	"strings"

	"hackswipe/internal/middleware"
	"hackswipe/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// respondError writes err using the status its AppError code maps to.
// Anything that is not an AppError becomes a logged 500.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}
	if appErr.Code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, appErr.Status(), appErr)
}

// currentUserID returns the id AuthRequired or TicketRequired stored.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

// parseID extracts a route parameter holding a UUID.
// On failure it writes a 404 JSON response and returns errResponseWritten,
// since a malformed id can never name an existing row.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, notFound string) (string, error) {
	id := strings.TrimSpace(c.Params(param))
	if err := uuid.Validate(id); err != nil {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundMessage(notFound))
		return "", errResponseWritten
	}
	return id, nil
}

// parseBody decodes the JSON body into out.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
