package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookswipe/bookswipe-server/internal/delivery/http/middleware"
	"github.com/bookswipe/bookswipe-server/internal/usecase/community"
)

type CommunityHandler struct {
	aggregator *community.Aggregator
}

func NewCommunityHandler(aggregator *community.Aggregator) *CommunityHandler {
	return &CommunityHandler{aggregator: aggregator}
}

// GetRoster handles GET /community/roster. An empty roster is a normal
// payload ("no matches yet"), never an error.
func (h *CommunityHandler) GetRoster(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	roster := h.aggregator.BuildRoster(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"matches": roster})
}

// GetTopMatch handles GET /community/top-match. A null top_match means
// "no match yet" and is rendered as its own state client-side.
func (h *CommunityHandler) GetTopMatch(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	top := h.aggregator.TopMatch(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"top_match": top})
}
