package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/delivery/http/middleware"
	"github.com/vanmates/vanmates-backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUserID pulls the authenticated profile id set by the auth
// middleware. A missing id means the route was wired without RequireAuth.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps domain sentinel errors onto HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrTravelStopNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, domain.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadySwiped):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCannotSwipeSelf),
		errors.Is(err, domain.ErrSameParticipant),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidDiscoveryMode),
		errors.Is(err, domain.ErrInvalidConversationType),
		errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrInvalidStopDates),
		errors.Is(err, domain.ErrInvalidDistance),
		errors.Is(err, domain.ErrInvalidAgeRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
