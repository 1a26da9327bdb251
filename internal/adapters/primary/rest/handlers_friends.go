package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type sendRequestBody struct {
	UserID   string `json:"userId" binding:"required"`
	FriendID string `json:"friendId" binding:"required"`
}

// HandleSendRequest traite POST /api/friends/request.
func (h *Handlers) HandleSendRequest(c *gin.Context) {
	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and friendId are required"})
		return
	}

	edge, err := h.relations.SendRequest(c.Request.Context(), body.UserID, body.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEdgeResponse(edge))
}

// HandleListRequests traite GET /api/friends/requests?user_id=...
func (h *Handlers) HandleListRequests(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	requests, err := h.relations.ListPendingRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]friendEdgeResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toPendingResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

type acceptRequestBody struct {
	UserID    string `json:"userId" binding:"required"`
	RequestID string `json:"requestId" binding:"required"`
}

// HandleAcceptRequest traite POST /api/friends/accept.
func (h *Handlers) HandleAcceptRequest(c *gin.Context) {
	var body acceptRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and requestId are required"})
		return
	}

	edge, err := h.relations.AcceptRequest(c.Request.Context(), body.UserID, body.RequestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Friend request accepted",
		"friendship": toEdgeResponse(edge),
	})
}

// HandleListFriends traite GET /api/friends?user_id=...
func (h *Handlers) HandleListFriends(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	friends, err := h.relations.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": toSummaryResponses(friends)})
}

// HandleSuggestions traite GET /api/friends/suggestions?user_id=...&limit=...
func (h *Handlers) HandleSuggestions(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	suggestions, err := h.relations.Suggest(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": toSummaryResponses(suggestions)})
}
