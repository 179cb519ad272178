package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/config"
	"github.com/gsualumni/alumninet/internal/middleware"
	"github.com/gsualumni/alumninet/pkg/storage"

	accHttp "github.com/gsualumni/alumninet/internal/modules/accomplishment/delivery/http"
	accRepo "github.com/gsualumni/alumninet/internal/modules/accomplishment/repository"
	accService "github.com/gsualumni/alumninet/internal/modules/accomplishment/service"

	adminHttp "github.com/gsualumni/alumninet/internal/modules/admin/delivery/http"
	adminService "github.com/gsualumni/alumninet/internal/modules/admin/service"

	alumniHttp "github.com/gsualumni/alumninet/internal/modules/alumni/delivery/http"
	alumniRepo "github.com/gsualumni/alumninet/internal/modules/alumni/repository"
	alumniService "github.com/gsualumni/alumninet/internal/modules/alumni/service"

	authHttp "github.com/gsualumni/alumninet/internal/modules/auth/delivery/http"
	authRepo "github.com/gsualumni/alumninet/internal/modules/auth/repository"
	authService "github.com/gsualumni/alumninet/internal/modules/auth/service"

	dashHttp "github.com/gsualumni/alumninet/internal/modules/dashboard/delivery/http"
	dashRepo "github.com/gsualumni/alumninet/internal/modules/dashboard/repository"
	dashService "github.com/gsualumni/alumninet/internal/modules/dashboard/service"

	eventHttp "github.com/gsualumni/alumninet/internal/modules/event/delivery/http"
	eventRepo "github.com/gsualumni/alumninet/internal/modules/event/repository"
	eventService "github.com/gsualumni/alumninet/internal/modules/event/service"

	jobHttp "github.com/gsualumni/alumninet/internal/modules/job/delivery/http"
	jobRepo "github.com/gsualumni/alumninet/internal/modules/job/repository"
	jobService "github.com/gsualumni/alumninet/internal/modules/job/service"

	modHttp "github.com/gsualumni/alumninet/internal/modules/moderation/delivery/http"
	modService "github.com/gsualumni/alumninet/internal/modules/moderation/service"

	notifHttp "github.com/gsualumni/alumninet/internal/modules/notification/delivery/http"
	notifRepo "github.com/gsualumni/alumninet/internal/modules/notification/repository"
	notifService "github.com/gsualumni/alumninet/internal/modules/notification/service"

	settingsHttp "github.com/gsualumni/alumninet/internal/modules/settings/delivery/http"
	settingsRepo "github.com/gsualumni/alumninet/internal/modules/settings/repository"
	settingsService "github.com/gsualumni/alumninet/internal/modules/settings/service"

	uploadHttp "github.com/gsualumni/alumninet/internal/modules/upload/delivery/http"
	uploadService "github.com/gsualumni/alumninet/internal/modules/upload/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Uploads degrade gracefully; everything else keeps working.
		log.Printf("cloudinary storage unavailable: %v", err)
		imageStorage = nil
	}

	settingsSvc := settingsService.NewService(settingsRepo.NewRepository(db))
	settingsHandler := settingsHttp.NewSettingsHandler(settingsSvc)

	userRepository := authRepo.NewUserRepository(db)
	authSvc := authService.NewService(userRepository, settingsSvc, cfg.JWTSecret, cfg.SessionTTL)
	authHandler := authHttp.NewAuthHandler(authSvc, cfg.SessionTTL, cfg.AppEnv == "production")

	alumniSvc := alumniService.NewService(alumniRepo.NewRepository(db))
	alumniHandler := alumniHttp.NewAlumniHandler(alumniSvc)

	jobRepository := jobRepo.NewRepository(db)
	jobSvc := jobService.NewService(jobRepository, alumniSvc, settingsSvc, redisClient, cfg.RateLimitSubmission)
	jobHandler := jobHttp.NewJobHandler(jobSvc)

	accRepository := accRepo.NewRepository(db)
	accSvc := accService.NewService(accRepository, alumniSvc, settingsSvc, redisClient, cfg.RateLimitSubmission)
	accHandler := accHttp.NewAccomplishmentHandler(accSvc)

	notificationSvc := notifService.NewService(notifRepo.NewRepository(db), redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	moderationSvc := modService.NewService(jobRepository, accRepository, notificationSvc)
	moderationHandler := modHttp.NewModerationHandler(moderationSvc)

	eventRepository := eventRepo.NewRepository(db)
	eventSvc := eventService.NewService(eventRepository, alumniSvc)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	adminSvc := adminService.NewService(userRepository)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	dashSvc := dashService.NewService(dashRepo.NewRepository(db), jobRepository, accRepository, eventRepository, alumniSvc, notificationSvc)
	dashHandler := dashHttp.NewDashboardHandler(dashSvc)

	uploadSvc := uploadService.NewService(imageStorage)
	uploadHandler := uploadHttp.NewUploadHandler(uploadSvc)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/jobs", jobHandler.SubmitJob)
		protected.POST("/accomplishments", accHandler.SubmitAccomplishment)

		protected.GET("/alumni", alumniHandler.SearchAlumni)

		protected.GET("/events", eventHandler.ListEvents)
		protected.POST("/events", eventHandler.CreateEvent)
		protected.POST("/events/:id/rsvp", eventHandler.RSVP)
		protected.DELETE("/events/:id/rsvp", eventHandler.CancelRSVP)

		protected.GET("/moderation/jobs", moderationHandler.ListPendingJobs)
		protected.POST("/moderation/jobs/:id/approve", moderationHandler.ApproveJob)
		protected.POST("/moderation/jobs/:id/reject", moderationHandler.RejectJob)
		protected.GET("/moderation/accomplishments", moderationHandler.ListPendingAccomplishments)
		protected.POST("/moderation/accomplishments/:id/approve", moderationHandler.ApproveAccomplishment)
		protected.POST("/moderation/accomplishments/:id/reject", moderationHandler.RejectAccomplishment)

		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PATCH("/settings", settingsHandler.UpdateSettings)

		protected.GET("/admin/users", adminHandler.ListUsers)
		protected.PATCH("/admin/users/:id/role", adminHandler.UpdateUserRole)

		protected.GET("/dashboard/admin", dashHandler.AdminOverview)
		protected.GET("/dashboard/me", dashHandler.MemberOverview)

		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		protected.POST("/upload", uploadHandler.UploadImage)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
