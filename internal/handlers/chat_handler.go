package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchfold/backend/internal/models"
	"github.com/stitchfold/backend/internal/repositories"
)

// ChatHandler handles direct-message HTTP requests
type ChatHandler struct {
	chatRepository repositories.ChatRepository
	userRepository repositories.UserRepository
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository) *ChatHandler {
	return &ChatHandler{chatRepository: chatRepo, userRepository: userRepo}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chats", h.ListConversations)
	g.POST("/chats", h.StartConversation)
	g.GET("/chats/:chat_id/messages", h.ListMessages)
	g.POST("/chats/:chat_id/messages", h.SendMessage)
	g.POST("/chats/:chat_id/read", h.MarkRead)
}

// ListConversations returns the authenticated user's inbox
func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	convs, err := h.chatRepository.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, convs)
}

// StartConversation opens (or returns) the thread with another user
func (h *ChatHandler) StartConversation(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.UserUID == uid {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot start a conversation with yourself")
	}

	// Verify the other party exists
	if _, err := h.userRepository.GetUserByUID(req.UserUID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conv, err := h.chatRepository.EnsureConversation(c.Request().Context(), uid, req.UserUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, conv)
}

// ListMessages returns a page of the thread
func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	chatID := c.Param("chat_id")

	if err := h.authorizeParticipant(c, chatID, uid); err != nil {
		return err
	}

	skip, limit := pagination(c)
	msgs, err := h.chatRepository.ListMessages(c.Request().Context(), chatID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, msgs)
}

// SendMessage appends a message to the thread
func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	chatID := c.Param("chat_id")

	if err := h.authorizeParticipant(c, chatID, uid); err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Text == "" && req.MediaURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message must have text or media")
	}

	msg, err := h.chatRepository.SendMessage(c.Request().Context(), chatID, uid, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, msg)
}

// MarkRead marks every message in the thread as read by the user
func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	chatID := c.Param("chat_id")

	if err := h.authorizeParticipant(c, chatID, uid); err != nil {
		return err
	}

	if err := h.chatRepository.MarkRead(c.Request().Context(), chatID, uid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// authorizeParticipant rejects access to threads the user is not part of.
func (h *ChatHandler) authorizeParticipant(c echo.Context, chatID, uid string) error {
	conv, err := h.chatRepository.GetConversation(c.Request().Context(), chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, u := range conv.Users {
		if u == uid {
			return nil
		}
	}
	return echo.NewHTTPError(http.StatusForbidden, "Not a participant in this conversation")
}
