package server

import (
	"hackswipe/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListMatches handles GET /api/matches
// @Summary List matches
// @Description The caller's people matches, newest first
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{matches=[]models.MatchWithUser}
// @Router /matches [get]
func (s *Server) ListMatches(c *fiber.Ctx) error {
	matches, err := s.matchService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}

// ListInquiries handles GET /api/inquiries
// @Summary List inquiries
// @Description Inquiries on posts the caller leads
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{inquiries=[]models.InquiryWithDetails}
// @Router /inquiries [get]
func (s *Server) ListInquiries(c *fiber.Ctx) error {
	inquiries, err := s.inquiryService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"inquiries": inquiries})
}

// DecideInquiry handles PATCH /api/inquiries/{id}
// @Summary Accept or decline an inquiry
// @Description Accepting creates a post match between leader and applicant
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Inquiry ID"
// @Param request body object{status=string} true "ACCEPTED or DECLINED"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /inquiries/{id} [patch]
func (s *Server) DecideInquiry(c *fiber.Ctx) error {
	inquiryID, err := s.parseID(c, "id", "Inquiry not found")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx := c.UserContext()
	decision, err := s.inquiryService.Decide(ctx, currentUserID(c), inquiryID, models.InquiryStatus(req.Status))
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishDecisionEvents(ctx, decision)
	return success(c)
}
