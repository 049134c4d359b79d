package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nakshatra/config"
	"nakshatra/internal/database"
	"nakshatra/internal/repository"
	"nakshatra/internal/router"
	"nakshatra/internal/service"
	"nakshatra/pkg/cloudinary"
	"nakshatra/pkg/logger"
	"nakshatra/pkg/payment"
	"nakshatra/pkg/sms"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init failed")
	}

	// Stub out external gateways when credentials are absent so local
	// development works without accounts.
	var sender sms.Sender = sms.StubSender{}
	if cfg.SMS.AuthKey != "" {
		sender = sms.NewMSG91Sender(cfg.SMS.BaseURL, cfg.SMS.AuthKey, cfg.SMS.SenderID)
	} else {
		log.Warn().Msg("SMS_AUTH_KEY not set, using stub SMS sender")
	}
	var provider payment.Provider = payment.StubProvider{}
	if cfg.Payment.KeyID != "" {
		provider = payment.NewRazorpayProvider(cfg.Payment.BaseURL, cfg.Payment.KeyID, cfg.Payment.KeySecret)
	} else {
		log.Warn().Msg("PAYMENT_KEY_ID not set, using stub payment provider")
	}

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	astroRepo := repository.NewAstrologerRepository(db)

	authSvc := service.NewAuthService(cfg, userRepo, otpRepo, sender, log)
	presenceSvc := service.NewPresenceService(astroRepo, cfg.Presence.SweepInterval, cfg.Presence.HeartbeatStaleness, log)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go presenceSvc.RunSweeper(sweepCtx)

	engine := router.Setup(cfg, router.Deps{
		DB:          db,
		Cloud:       cloud,
		Provider:    provider,
		AuthSvc:     authSvc,
		PresenceSvc: presenceSvc,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	stopSweeper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
