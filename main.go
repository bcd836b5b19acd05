package main

import (
	"log"

	api "assistant-backend/cmd/api"
	activityDelivery "assistant-backend/internal/activity/delivery"
	activitydomain "assistant-backend/internal/activity/domain"
	activityRepo "assistant-backend/internal/activity/repository"
	"assistant-backend/internal/analytics"
	calendarDelivery "assistant-backend/internal/calendar/delivery"
	calendardomain "assistant-backend/internal/calendar/domain"
	calendarRepo "assistant-backend/internal/calendar/repository"
	calendarUsecase "assistant-backend/internal/calendar/usecase"
	emailDelivery "assistant-backend/internal/email/delivery"
	emaildomain "assistant-backend/internal/email/domain"
	emailRepo "assistant-backend/internal/email/repository"
	emailUsecase "assistant-backend/internal/email/usecase"
	insightDelivery "assistant-backend/internal/insight/delivery"
	insightdomain "assistant-backend/internal/insight/domain"
	insightRepo "assistant-backend/internal/insight/repository"
	insightUsecase "assistant-backend/internal/insight/usecase"
	"assistant-backend/internal/notification"
	recommendationDelivery "assistant-backend/internal/recommendation/delivery"
	recommendationdomain "assistant-backend/internal/recommendation/domain"
	recengine "assistant-backend/internal/recommendation/engine"
	recommendationRepo "assistant-backend/internal/recommendation/repository"
	recommendationUsecase "assistant-backend/internal/recommendation/usecase"
	"assistant-backend/internal/scheduler"
	userDelivery "assistant-backend/internal/user/delivery"
	userdomain "assistant-backend/internal/user/domain"
	userRepo "assistant-backend/internal/user/repository"
	"assistant-backend/pkg/aiservice"
	"assistant-backend/pkg/config"
	"assistant-backend/pkg/database"
	"assistant-backend/pkg/fcm"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&userdomain.User{},
		&userdomain.DeviceToken{},
		&calendardomain.CalendarEvent{},
		&emaildomain.Email{},
		&activitydomain.ActivityLog{},
		&insightdomain.Insight{},
		&recommendationdomain.Recommendation{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := userRepo.NewUserRepository(db)
	tokenRepository := userRepo.NewDeviceTokenRepository(db)
	calendarRepository := calendarRepo.NewGormCalendarRepository(db)
	emailRepository := emailRepo.NewGormEmailRepository(db)
	activityRepository := activityRepo.NewGormActivityRepository(db)
	insightRepository := insightRepo.NewGormInsightRepository(db)
	recRepository := recommendationRepo.NewGormRecommendationRepository(db)

	// Initialize FCM Client (optional, notification service works without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, FCM disabled")
	}

	// Initialize notification fan-out
	notifService := notification.NewService(insightRepository, tokenRepository, fcmClient, cfg.PendingReplayLimit)

	// Initialize background engines
	aiClient := aiservice.NewClient(cfg.AIServiceURL, cfg.AIServiceTimeout)
	analyticsEngine := analytics.NewEngine(userRepository, insightRepository, aiClient, notifService)
	recommendationEngine := recengine.New(userRepository, calendarRepository, emailRepository, activityRepository, recRepository)

	// Initialize use cases (dependency injection)
	calendarUC := calendarUsecase.NewCalendarUsecase(calendarRepository, activityRepository)
	emailUC := emailUsecase.NewEmailUsecase(emailRepository, activityRepository)
	insightUC := insightUsecase.NewInsightUsecase(insightRepository, userRepository)
	recommendationUC := recommendationUsecase.NewRecommendationUsecase(recRepository, activityRepository)

	// Initialize scheduler
	sched := scheduler.New(scheduler.Jobs(analyticsEngine, recommendationEngine)...)
	if cfg.SchedulerEnabled {
		sched.Start()
		defer sched.Stop()
	} else {
		log.Printf("[WARN] Scheduler disabled by configuration")
	}

	// Initialize HTTP handlers
	handlers := api.Handlers{
		User:           userDelivery.NewUserHandler(userRepository, tokenRepository),
		Calendar:       calendarDelivery.NewCalendarHandler(calendarUC),
		Email:          emailDelivery.NewEmailHandler(emailUC),
		Activity:       activityDelivery.NewActivityHandler(activityRepository),
		Insight:        insightDelivery.NewInsightHandler(insightUC),
		Recommendation: recommendationDelivery.NewRecommendationHandler(recommendationUC),
		System:         api.NewSystemHandler(sched, notifService),
	}

	r := gin.Default()
	api.SetupRoutes(r, handlers, notifService, userRepository, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
