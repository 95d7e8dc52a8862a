package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vanmates/vanmates-backend/internal/delivery/http/handler"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/middleware"
	"github.com/vanmates/vanmates-backend/internal/domain"
)

type Router struct {
	profileHandler   *handler.ProfileHandler
	discoveryHandler *handler.DiscoveryHandler
	swipeHandler     *handler.SwipeHandler
	chatHandler      *handler.ChatHandler
	authMiddleware   *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	discoveryHandler *handler.DiscoveryHandler,
	swipeHandler *handler.SwipeHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler:   profileHandler,
		discoveryHandler: discoveryHandler,
		swipeHandler:     swipeHandler,
		chatHandler:      chatHandler,
		authMiddleware:   authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.POST("", r.profileHandler.CreateMyProfile)
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.PUT("/me/location", r.profileHandler.UpdateLocation)
				profile.PUT("/me/device-token", r.profileHandler.RegisterDeviceToken)
				profile.PUT("/me/notification-prefs", r.profileHandler.UpdateNotificationPrefs)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.GET("/:profile_id", r.profileHandler.GetProfileByID)
			}

			// Travel stop routes
			stops := protected.Group("/travel-stops")
			{
				stops.GET("", r.profileHandler.ListTravelStops)
				stops.POST("", r.profileHandler.AddTravelStop)
				stops.DELETE("/:stop_id", r.profileHandler.RemoveTravelStop)
			}

			// Discovery routes
			discovery := protected.Group("/discovery")
			{
				discovery.GET("", r.discoveryHandler.FindCandidates)
				discovery.POST("/reset", r.discoveryHandler.ResetSeen)
			}

			// Swipe and match routes
			swipes := protected.Group("/swipes")
			{
				swipes.POST("", r.swipeHandler.RecordSwipe)
				swipes.GET("/likes-received", r.swipeHandler.ListLikesReceived)
			}
			protected.GET("/matches", r.swipeHandler.ListMatches)

			// Conversation and message routes
			conversations := protected.Group("/conversations")
			{
				conversations.POST("", r.chatHandler.ResolveConversation)
				conversations.POST("/activity", r.chatHandler.CreateActivityConversation)
				conversations.GET("", r.chatHandler.ListConversations)
				conversations.GET("/:conversation_id/messages", r.chatHandler.ListMessages)
				conversations.POST("/:conversation_id/messages", r.chatHandler.SendMessage)
				conversations.POST("/:conversation_id/read", r.chatHandler.MarkRead)
				conversations.PUT("/:conversation_id/mute", r.chatHandler.SetMuted)
				conversations.POST("/:conversation_id/hide", r.chatHandler.Hide)
				conversations.POST("/:conversation_id/leave", r.chatHandler.Leave)
			}
			protected.DELETE("/messages/:message_id", r.chatHandler.DeleteMessage)
		}
	}

	return router
}

// registerValidations adds the lookingfor tag used by profile DTOs.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("lookingfor", func(fl validator.FieldLevel) bool {
		switch domain.LookingFor(fl.Field().String()) {
		case domain.LookingForDating, domain.LookingForFriends, domain.LookingForBoth:
			return true
		}
		return false
	})
}
