package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
}

func NewChatHandler(chatUseCase *chat.UseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type resolveConversationRequest struct {
	Type    string    `json:"type" binding:"required,oneof=dating friends"`
	OtherID uuid.UUID `json:"other_id" binding:"required"`
}

// ResolveConversation handles POST /conversations
// @Summary Get or create the direct conversation with another user
// @Tags conversations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /conversations [post]
func (h *ChatHandler) ResolveConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req resolveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	conv, err := h.chatUseCase.GetOrCreateConversation(
		c.Request.Context(), domain.ConversationType(req.Type), userID, req.OtherID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

type createActivityRequest struct {
	ParticipantIDs []uuid.UUID `json:"participant_ids" binding:"required,min=1"`
}

// CreateActivityConversation handles POST /conversations/activity
// @Summary Create a group chat for an event or activity
// @Tags conversations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /conversations/activity [post]
func (h *ChatHandler) CreateActivityConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	conv, err := h.chatUseCase.CreateActivityConversation(c.Request.Context(), userID, req.ParticipantIDs)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// ListConversations handles GET /conversations
// @Summary List my visible conversations
// @Tags conversations
// @Security BearerAuth
// @Produce json
// @Router /conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	convs, err := h.chatUseCase.ListConversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// SendMessage handles POST /conversations/:conversation_id/messages
// @Summary Send a message; other participants get a push
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /conversations/{conversation_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	convID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), convID, userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// ListMessages handles GET /conversations/:conversation_id/messages
// @Summary List messages, newest first
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Router /conversations/{conversation_id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	convID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	limit, offset := pagination(c)
	messages, err := h.chatUseCase.ListMessages(c.Request.Context(), convID, userID, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// DeleteMessage handles DELETE /messages/:message_id
// @Summary Soft-delete one of my messages
// @Tags messages
// @Security BearerAuth
// @Router /messages/{message_id} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "message_id")
	if !ok {
		return
	}

	if err := h.chatUseCase.DeleteMessage(c.Request.Context(), messageID, userID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkRead handles POST /conversations/:conversation_id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	h.participantAction(c, h.chatUseCase.MarkRead)
}

type muteRequest struct {
	Muted bool `json:"muted"`
}

// SetMuted handles PUT /conversations/:conversation_id/mute
// @Summary Mute or unmute message pushes for this conversation only
// @Tags conversations
// @Security BearerAuth
// @Router /conversations/{conversation_id}/mute [put]
func (h *ChatHandler) SetMuted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	convID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	var req muteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.chatUseCase.SetMuted(c.Request.Context(), convID, userID, req.Muted); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hide handles POST /conversations/:conversation_id/hide
func (h *ChatHandler) Hide(c *gin.Context) {
	h.participantAction(c, h.chatUseCase.Hide)
}

// Leave handles POST /conversations/:conversation_id/leave
func (h *ChatHandler) Leave(c *gin.Context) {
	h.participantAction(c, h.chatUseCase.Leave)
}

func (h *ChatHandler) participantAction(c *gin.Context, action func(ctx context.Context, convID, userID uuid.UUID) error) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	convID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	if err := action(c.Request.Context(), convID, userID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
