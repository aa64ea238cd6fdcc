package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/delivery/http/middleware"
	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/usecase/deck"
)

type DeckHandler struct {
	manager *deck.Manager
	cfg     config.DeckConfig
}

func NewDeckHandler(manager *deck.Manager, cfg config.DeckConfig) *DeckHandler {
	return &DeckHandler{manager: manager, cfg: cfg}
}

// DecideRequest carries either a discrete direction or a raw drag
// offset; exactly one of the two is expected.
type DecideRequest struct {
	Direction  string   `json:"direction" binding:"omitempty,swipedirection"`
	DragOffset *float64 `json:"drag_offset"`
}

type deckStateResponse struct {
	SessionID    string       `json:"session_id"`
	State        deck.State   `json:"state"`
	CurrentBook  *domain.Book `json:"current_book,omitempty"`
	Cursor       int          `json:"cursor"`
	Total        int          `json:"total"`
	LikedCount   int          `json:"liked_count"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

func deckState(s *deck.Session) deckStateResponse {
	cursor, total, liked := s.Progress()
	resp := deckStateResponse{
		SessionID:    s.ID,
		State:        s.State(),
		Cursor:       cursor,
		Total:        total,
		LikedCount:   liked,
		ErrorMessage: s.ErrorMessage(),
	}
	if book, ok := s.CurrentBook(); ok {
		resp.CurrentBook = &book
	}
	return resp
}

// CreateSession handles POST /deck
func (h *DeckHandler) CreateSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	// A failed load still yields a session; its Error state is part of
	// the payload, not an HTTP failure.
	s := h.manager.Load(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, deckState(s))
}

// GetSession handles GET /deck/:id
func (h *DeckHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, deckState(s))
}

// Decide handles POST /deck/:id/decide
func (h *DeckHandler) Decide(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var accepted bool
	switch {
	case req.Direction != "":
		direction, err := deck.ParseDirection(req.Direction)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid direction"})
			return
		}
		accepted = s.Decide(direction)
	case req.DragOffset != nil:
		accepted = s.DecideDrag(*req.DragOffset, h.cfg.DragThreshold)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "direction or drag_offset required"})
		return
	}

	resp := deckState(s)
	c.JSON(http.StatusOK, gin.H{
		"accepted": accepted,
		"session":  resp,
	})
}

// PendingMatches handles GET /deck/:id/matches — drain-once semantics.
func (h *DeckHandler) PendingMatches(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	matches := s.PendingMatches()
	if matches == nil {
		matches = []int64{}
	}
	c.JSON(http.StatusOK, gin.H{"matched_user_ids": matches})
}

// CloseSession handles DELETE /deck/:id
func (h *DeckHandler) CloseSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.manager.Close(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "deck session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

func (h *DeckHandler) session(c *gin.Context) (*deck.Session, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil, false
	}

	s, err := h.manager.Get(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrDeckSessionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "deck session not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get deck session"})
		return nil, false
	}
	return s, true
}
