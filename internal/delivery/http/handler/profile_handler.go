package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.UseCase
}

func NewProfileHandler(profileUseCase *profile.UseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} profile.ProfileView
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.profileUseCase.GetProfile(c.Request.Context(), userID, nil)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateMyProfile handles POST /profile
// @Summary Create profile for a new account
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /profile [post]
func (h *ProfileHandler) CreateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.profileUseCase.CreateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CompleteOnboarding handles POST /profile/complete-onboarding
// @Summary Mark onboarding complete, making the profile discoverable
// @Tags profile
// @Security BearerAuth
// @Router /profile/complete-onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.CompleteOnboarding(c.Request.Context(), userID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateLocationRequest struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lon float64 `json:"lon" binding:"min=-180,max=180"`
}

// UpdateLocation handles PUT /profile/me/location
// @Summary Pin my current coordinates
// @Tags profile
// @Security BearerAuth
// @Router /profile/me/location [put]
func (h *ProfileHandler) UpdateLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.profileUseCase.UpdateLocation(c.Request.Context(), userID, req.Lat, req.Lon); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type deviceTokenRequest struct {
	Token *string `json:"token" binding:"omitempty,max=512"`
}

// RegisterDeviceToken handles PUT /profile/me/device-token
// @Summary Register or clear my push device token
// @Tags profile
// @Security BearerAuth
// @Router /profile/me/device-token [put]
func (h *ProfileHandler) RegisterDeviceToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req deviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.profileUseCase.RegisterDeviceToken(c.Request.Context(), userID, req.Token); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateNotificationPrefs handles PUT /profile/me/notification-prefs
// @Summary Toggle push categories
// @Tags profile
// @Security BearerAuth
// @Router /profile/me/notification-prefs [put]
func (h *ProfileHandler) UpdateNotificationPrefs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.NotificationPrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.profileUseCase.UpdateNotificationPrefs(c.Request.Context(), userID, &req); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfileByID handles GET /profile/:profile_id
// @Summary Get another user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Router /profile/{profile_id} [get]
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile_id"})
		return
	}

	view, err := h.profileUseCase.GetProfile(c.Request.Context(), targetID, &userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListTravelStops handles GET /travel-stops
// @Summary List my travel stops
// @Tags travel-stops
// @Security BearerAuth
// @Produce json
// @Router /travel-stops [get]
func (h *ProfileHandler) ListTravelStops(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stops, err := h.profileUseCase.ListTravelStops(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

// AddTravelStop handles POST /travel-stops
// @Summary Add a travel stop to my route
// @Tags travel-stops
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /travel-stops [post]
func (h *ProfileHandler) AddTravelStop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.AddTravelStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	stop, err := h.profileUseCase.AddTravelStop(c.Request.Context(), userID, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stop)
}

// RemoveTravelStop handles DELETE /travel-stops/:stop_id
// @Summary Delete one of my travel stops
// @Tags travel-stops
// @Security BearerAuth
// @Router /travel-stops/{stop_id} [delete]
func (h *ProfileHandler) RemoveTravelStop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid stop_id"})
		return
	}

	if err := h.profileUseCase.RemoveTravelStop(c.Request.Context(), userID, stopID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
