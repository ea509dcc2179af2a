package server

import (
	"hackswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
// @Summary Get own profile
// @Description Returns the caller's profile, or null when none was saved
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{profile=models.Profile}
// @Failure 401 {object} models.ErrorResponse
// @Router /profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// PutProfile handles PUT /api/profile
// @Summary Replace profile
// @Description Upserts the profile. Omitted fields reset to their defaults.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfileInput true "Profile"
// @Success 200 {object} object{profile=models.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) PutProfile(c *fiber.Ctx) error {
	var in service.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	profile, err := s.profileService.ReplaceProfile(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// PatchProfile handles PATCH /api/profile
// @Summary Update profile fields
// @Description Changes only the fields present in the body
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfileInput true "Profile fields"
// @Success 200 {object} object{profile=models.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [patch]
func (s *Server) PatchProfile(c *fiber.Ctx) error {
	var in service.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	profile, err := s.profileService.PatchProfile(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}
