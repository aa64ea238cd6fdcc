package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookswipe/bookswipe-server/internal/delivery/http/middleware"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetMessages handles GET /chat/:user_id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, otherID, ok := h.participants(c)
	if !ok {
		return
	}

	msgs, err := h.chatUseCase.History(c.Request.Context(), userID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load messages"})
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendMessage handles POST /chat/:user_id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, otherID, ok := h.participants(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.chatUseCase.Send(c.Request.Context(), userID, otherID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message content is empty"})
		case errors.Is(err, domain.ErrCannotChatSelf):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot chat with yourself"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to send message"})
		}
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// StreamMessages handles GET /chat/:user_id/stream as server-sent
// events. The stream ends when the client disconnects.
func (h *ChatHandler) StreamMessages(c *gin.Context) {
	userID, otherID, ok := h.participants(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	feed := h.chatUseCase.Stream(ctx, userID, otherID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg := <-feed:
			c.SSEvent("message", msg)
			return true
		}
	})
}

func (h *ChatHandler) participants(c *gin.Context) (userID, otherID int64, ok bool) {
	userID, authed := middleware.UserID(c)
	if !authed {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return 0, 0, false
	}

	otherID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return 0, 0, false
	}
	return userID, otherID, true
}
