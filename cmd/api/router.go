package api

import (
	"net/http"

	activityDelivery "assistant-backend/internal/activity/delivery"
	authDelivery "assistant-backend/internal/auth/delivery"
	calendarDelivery "assistant-backend/internal/calendar/delivery"
	emailDelivery "assistant-backend/internal/email/delivery"
	insightDelivery "assistant-backend/internal/insight/delivery"
	"assistant-backend/internal/notification"
	recommendationDelivery "assistant-backend/internal/recommendation/delivery"
	userDelivery "assistant-backend/internal/user/delivery"
	userRepository "assistant-backend/internal/user/repository"
	"assistant-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	User           *userDelivery.UserHandler
	Calendar       *calendarDelivery.CalendarHandler
	Email          *emailDelivery.EmailHandler
	Activity       *activityDelivery.ActivityHandler
	Insight        *insightDelivery.InsightHandler
	Recommendation *recommendationDelivery.RecommendationHandler
	System         *SystemHandler
}

// SetupRoutes registers the full API surface.
func SetupRoutes(r *gin.Engine, h Handlers, notifSvc *notification.Service, userRepo userRepository.UserRepository, cfg *config.Config) {
	authRequired := authDelivery.AuthMiddleware(userRepo, cfg)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// WebSocket endpoint for live insight delivery
		api.GET("/events", authRequired, notifSvc.ServeWS)

		// Insight routes (protected)
		insights := api.Group("/insights")
		insights.Use(authRequired)
		{
			insights.GET("", h.Insight.GetPendingInsights)
			insights.GET("/all", h.Insight.GetAllInsights)
			insights.GET("/daily", h.Insight.GetDailyReport)
			insights.POST("/:id/viewed", h.Insight.MarkViewed)
			insights.POST("/:id/feedback", h.Insight.SubmitFeedback)
		}

		// Recommendation routes (protected)
		recommendations := api.Group("/recommendations")
		recommendations.Use(authRequired)
		{
			recommendations.GET("", h.Recommendation.GetPendingRecommendations)
			recommendations.PATCH("/:id/status", h.Recommendation.UpdateStatus)
		}

		// Calendar routes (protected)
		calendar := api.Group("/calendar")
		calendar.Use(authRequired)
		{
			calendar.GET("", h.Calendar.GetUpcomingEvents)
			calendar.POST("/schedule", h.Calendar.ScheduleEvent)
			calendar.POST("/:id/cancel", h.Calendar.CancelEvent)
			calendar.POST("/:id/complete", h.Calendar.CompleteEvent)
		}

		// Email routes (protected)
		emails := api.Group("/emails")
		emails.Use(authRequired)
		{
			emails.GET("", h.Email.GetEmails)
			emails.POST("", h.Email.CreateDraft)
			emails.POST("/:id/send", h.Email.SendEmail)
			emails.POST("/:id/fail", h.Email.FailEmail)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/me", h.User.GetProfile)
			users.GET("/preferences", h.User.GetPreferences)
			users.PUT("/preferences", h.User.UpdatePreferences)
			users.POST("/fcm/register", h.User.RegisterDeviceToken)
			users.DELETE("/fcm/:token", h.User.DeleteDeviceToken)
		}

		// Activity routes (protected)
		activities := api.Group("/activities")
		activities.Use(authRequired)
		{
			activities.GET("", h.Activity.GetActivities)
			activities.POST("", h.Activity.LogActivity)
		}

		// System routes (protected) - scheduler and notification introspection
		system := api.Group("/system")
		system.Use(authRequired)
		{
			system.GET("/scheduler", h.System.GetSchedulerStatus)
			system.POST("/scheduler/jobs/:name/run", h.System.TriggerJob)
			system.GET("/notifications", h.System.GetNotificationStatus)
		}
	}
}
