package server

import (
	"strings"

	"hackswipe/internal/models"
	"hackswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/conversations
// @Summary List conversations
// @Description Conversations the caller takes part in, with the latest message and the other participants
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{conversations=[]models.ConversationSummary}
// @Router /conversations [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.chatService.ListConversations(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

// CreateConversation handles POST /api/conversations
// @Summary Create conversation
// @Description The caller becomes OWNER, the listed participants MEMBER
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{participantIds=[]string,isGroup=bool,name=string,postId=string} true "Conversation"
// @Success 200 {object} object{conversation=models.Conversation}
// @Failure 400 {object} models.ErrorResponse
// @Router /conversations [post]
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	var req struct {
		ParticipantIDs []string `json:"participantIds"`
		IsGroup        bool     `json:"isGroup"`
		Name           *string  `json:"name"`
		PostID         *string  `json:"postId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	conv, err := s.chatService.CreateConversation(c.UserContext(), service.CreateConversationInput{
		UserID:         currentUserID(c),
		ParticipantIDs: req.ParticipantIDs,
		IsGroup:        req.IsGroup,
		Name:           req.Name,
		PostID:         req.PostID,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"conversation": conv})
}

// GetMessages handles GET /api/conversations/{id}/messages
// @Summary List messages
// @Description Conversation history, oldest first. Participants only.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} object{messages=[]models.MessageWithSender}
// @Failure 403 {object} models.ErrorResponse
// @Router /conversations/{id}/messages [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	convID, err := s.parseID(c, "id", "Conversation not found")
	if err != nil {
		return nil
	}
	messages, err := s.chatService.ListMessages(c.UserContext(), currentUserID(c), convID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendMessage handles POST /api/messages
// @Summary Send message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{conversationId=string,content=string,attachmentUrl=string} true "Message"
// @Success 200 {object} object{message=models.MessageWithSender}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ConversationID string  `json:"conversationId"`
		Content        string  `json:"content"`
		AttachmentURL  *string `json:"attachmentUrl"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if strings.TrimSpace(req.ConversationID) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("conversationId is required"))
	}

	ctx := c.UserContext()
	sent, err := s.chatService.SendMessage(ctx, service.SendMessageInput{
		UserID:         currentUserID(c),
		ConversationID: req.ConversationID,
		Content:        req.Content,
		AttachmentURL:  req.AttachmentURL,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishMessageEvents(ctx, sent)
	return c.JSON(fiber.Map{"message": sent.Message})
}
