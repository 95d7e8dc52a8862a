package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/usecase/discovery"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.UseCase
}

func NewDiscoveryHandler(discoveryUseCase *discovery.UseCase) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryUseCase: discoveryUseCase}
}

// FindCandidates handles GET /discovery
// @Summary Find discovery candidates within the travel radius
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param mode query string false "dating|friends|any (default any)"
// @Param max_distance query int false "radius in miles, defaults to profile preference"
// @Param limit query int false "page size, default 40"
// @Param exclude query string false "comma-separated profile ids to omit"
// @Param basic query bool false "ignore travel stops"
// @Router /discovery [get]
func (h *DiscoveryHandler) FindCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mode := domain.DiscoveryMode(c.DefaultQuery("mode", string(domain.ModeAny)))

	var maxDistance int
	if raw := c.Query("max_distance"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_distance"})
			return
		}
		maxDistance = v
	}

	var limit int
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = v
	}

	var excludeIDs []uuid.UUID
	if raw := c.Query("exclude"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exclude id"})
				return
			}
			excludeIDs = append(excludeIDs, id)
		}
	}

	candidates, err := h.discoveryUseCase.FindCandidates(c.Request.Context(), userID, discovery.FindCandidatesRequest{
		Mode:             mode,
		MaxDistanceMiles: maxDistance,
		ExcludeIDs:       excludeIDs,
		Limit:            limit,
		Basic:            c.Query("basic") == "true",
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// ResetSeen handles POST /discovery/reset
// @Summary Clear the rotation window so served candidates reappear
// @Tags discovery
// @Security BearerAuth
// @Router /discovery/reset [post]
func (h *DiscoveryHandler) ResetSeen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.discoveryUseCase.ResetSeen(c.Request.Context(), userID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
