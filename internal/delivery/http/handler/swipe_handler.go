package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vanmates/vanmates-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.UseCase
}

func NewSwipeHandler(swipeUseCase *swipe.UseCase) *SwipeHandler {
	return &SwipeHandler{swipeUseCase: swipeUseCase}
}

// RecordSwipe handles POST /swipes
// @Summary Record a swipe; a mutual like forms a match
// @Tags swipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} swipe.SwipeResult
// @Failure 409 {object} ErrorResponse
// @Router /swipes [post]
func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req swipe.RecordSwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.swipeUseCase.RecordSwipe(c.Request.Context(), userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListLikesReceived handles GET /swipes/likes-received
// @Summary List unanswered incoming likes
// @Tags swipes
// @Security BearerAuth
// @Produce json
// @Router /swipes/likes-received [get]
func (h *SwipeHandler) ListLikesReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	likes, err := h.swipeUseCase.ListLikesReceived(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// ListMatches handles GET /matches
// @Summary List my confirmed matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Router /matches [get]
func (h *SwipeHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	matches, err := h.swipeUseCase.ListMatches(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
