package server

import (
	"hackswipe/internal/featureflags"
	"hackswipe/internal/models"
	"hackswipe/internal/seed"

	"github.com/gofiber/fiber/v2"
)

// GetOverview handles GET /api/overview
// @Summary Dashboard statistics
// @Tags overview
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{stats=models.OverviewStats}
// @Router /overview [get]
func (s *Server) GetOverview(c *fiber.Ctx) error {
	stats, err := s.overviewService.Stats(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// GetStreak handles GET /api/streak
// @Summary Activity streak
// @Description Days since joining, counting the join day, capped at 30
// @Tags overview
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{streak=int}
// @Router /streak [get]
func (s *Server) GetStreak(c *fiber.Ctx) error {
	streak, err := s.overviewService.Streak(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"streak": streak})
}

// LoadDummyData handles POST /api/dummy-data
// @Summary Load demo data
// @Description Inserts the demo accounts and their posts. Unavailable in
// @Description production unless the demo_data flag is on.
// @Tags overview
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /dummy-data [post]
func (s *Server) LoadDummyData(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if s.config.IsProduction() && !s.featureFlags.Enabled(featureflags.DemoData, userID) {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundMessage("Not found"))
	}

	if _, err := seed.LoadDemo(c.UserContext(), s.db); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comprehensive dummy data created",
	})
}
