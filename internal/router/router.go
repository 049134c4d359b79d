package router

import (
	"time"

	"nakshatra/config"
	"nakshatra/internal/domain"
	"nakshatra/internal/handler"
	"nakshatra/internal/middleware"
	"nakshatra/internal/repository"
	"nakshatra/internal/service"
	"nakshatra/internal/ws"
	"nakshatra/pkg/cloudinary"
	"nakshatra/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps carries the externally constructed collaborators.
type Deps struct {
	DB          *gorm.DB
	Cloud       cloudinary.Client
	Provider    payment.Provider
	AuthSvc     *service.AuthService
	PresenceSvc *service.PresenceService
	Log         zerolog.Logger
}

func Setup(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Throttle(middleware.NewRequestLimiter(100, time.Minute)))
	otpThrottle := middleware.ThrottleOTP(middleware.NewRequestLimiter(5, 15*time.Minute))

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	astroRepo := repository.NewAstrologerRepository(d.DB)
	sessionRepo := repository.NewSessionRepository(d.DB)
	txnRepo := repository.NewTransactionRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	categoryRepo := repository.NewCategoryRepository(d.DB)
	bannerRepo := repository.NewBannerRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)

	// Services
	ledger := service.NewGormWalletLedger(d.DB, d.Log)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath, d.Log)
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, fcmSvc)
	reviewSvc := service.NewReviewService(reviewRepo, astroRepo, d.Log)
	sessionSvc := service.NewSessionService(astroRepo, sessionRepo, ledger, reviewSvc, d.Log)

	chatHub := ws.NewHub()

	// Handlers
	authHandler := handler.NewAuthHandler(d.AuthSvc, userRepo)
	astroHandler := handler.NewAstrologerHandler(astroRepo, reviewRepo, d.PresenceSvc, d.Cloud)
	sessionHandler := handler.NewSessionHandler(sessionSvc, sessionRepo, astroRepo, messageRepo, notifSvc)
	walletHandler := handler.NewWalletHandler(ledger, txnRepo, d.Provider, notifSvc, cfg.Payment.Currency)
	catalogHandler := handler.NewCatalogHandler(categoryRepo, bannerRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	adminHandler := handler.NewAdminHandler(astroRepo, userRepo, reviewSvc, notifSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	astrologerMw := middleware.RequireRole(domain.RoleAstrologer)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/send-otp", otpThrottle, authHandler.SendOTP)
		authGroup.POST("/verify-otp", authHandler.VerifyOTP)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", authMw, authHandler.Me)
	}

	api := r.Group("/api/v1")
	{
		// Public catalog and discovery
		api.GET("/astrologers", astroHandler.List)
		api.GET("/astrologers/:id", astroHandler.Get)
		api.GET("/astrologers/:id/reviews", astroHandler.Reviews)
		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/banners", catalogHandler.ListBanners)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.PATCH("/profile", authHandler.UpdateProfile)
			me.POST("/fcm-token", authHandler.RegisterFCMToken)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}

		astrologers := api.Group("/astrologers")
		astrologers.Use(authMw, astrologerMw)
		{
			astrologers.POST("/heartbeat", astroHandler.Heartbeat)
			astrologers.PATCH("/availability", astroHandler.SetAvailability)
			astrologers.PATCH("/profile", astroHandler.UpdateProfile)
			astrologers.POST("/media", astroHandler.UploadMedia)
		}

		chat := api.Group("/chat")
		chat.Use(authMw)
		{
			chat.POST("/sessions", sessionHandler.Start)
			chat.GET("/sessions", sessionHandler.List)
			chat.POST("/sessions/:id/end", sessionHandler.End)
			chat.POST("/sessions/:id/rating", sessionHandler.Rate)
			chat.GET("/sessions/:id/messages", sessionHandler.Messages)
			chat.POST("/validate-balance", sessionHandler.ValidateBalance)
		}

		wallet := api.Group("/wallet")
		wallet.Use(authMw)
		{
			wallet.GET("/balance", walletHandler.Balance)
			wallet.POST("/recharge", walletHandler.Recharge)
			wallet.POST("/recharge/verify", walletHandler.RechargeVerify)
			wallet.GET("/transactions", walletHandler.Transactions)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.POST("/astrologers", adminHandler.CreateAstrologer)
			admin.PATCH("/astrologers/:id/status", adminHandler.SetAstrologerStatus)
			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
			admin.POST("/banners", catalogHandler.CreateBanner)
			admin.PUT("/banners/:id", catalogHandler.UpdateBanner)
			admin.DELETE("/banners/:id", catalogHandler.DeleteBanner)
			admin.PATCH("/reviews/:id/moderate", adminHandler.ModerateReview)
			admin.POST("/notifications/broadcast", adminHandler.Broadcast)
		}
	}

	r.GET("/ws/chat", handler.UpgradeChatWS(&cfg.JWT, chatHub, sessionRepo, astroRepo, messageRepo))

	return r
}
