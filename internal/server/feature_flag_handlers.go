package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags returns the flags evaluated for the current user.
// @Summary Feature flags
// @Tags meta
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{flags=map[string]bool}
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(currentUserID(c)),
	})
}
