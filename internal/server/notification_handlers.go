package server

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
// @Summary List notifications
// @Description Up to five recent matches, inquiries and messages, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{notifications=[]models.Notification}
// @Router /notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	items, err := s.notificationService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"notifications": items})
}

// MarkNotificationRead handles POST /api/notifications/{id}/read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID, e.g. match:<uuid>"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /notifications/{id}/read [post]
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		id = c.Params("id")
	}
	if err := s.notificationService.MarkRead(c.UserContext(), currentUserID(c), id); err != nil {
		return s.respondError(c, err)
	}
	return success(c)
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool}
// @Router /notifications/read-all [post]
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.UserContext(), currentUserID(c)); err != nil {
		return s.respondError(c, err)
	}
	return success(c)
}
