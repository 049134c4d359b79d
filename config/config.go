package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OTP        OTPConfig
	SMS        SMSConfig
	Payment    PaymentConfig
	Cloudinary CloudinaryConfig
	Firebase   FirebaseConfig
	Presence   PresenceConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OTPConfig struct {
	Expiry      time.Duration
	MaxAttempts int
}

// SMSConfig configures the external OTP delivery gateway.
type SMSConfig struct {
	BaseURL  string
	AuthKey  string
	SenderID string
}

// PaymentConfig configures the recharge payment gateway.
type PaymentConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Currency  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

// PresenceConfig controls the background sweep that flips astrologers
// offline when their heartbeat goes stale.
type PresenceConfig struct {
	SweepInterval      time.Duration
	HeartbeatStaleness time.Duration
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8080"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "nakshatra:nakshatra@tcp(localhost:3306)/nakshatra?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envIntOr("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envIntOr("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  envOr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envOr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "nakshatra",
		},
		OTP: OTPConfig{
			Expiry:      5 * time.Minute,
			MaxAttempts: 5,
		},
		SMS: SMSConfig{
			BaseURL:  envOr("SMS_BASE_URL", "https://control.msg91.com"),
			AuthKey:  os.Getenv("SMS_AUTH_KEY"),
			SenderID: envOr("SMS_SENDER_ID", "NKSHTR"),
		},
		Payment: PaymentConfig{
			BaseURL:   envOr("PAYMENT_BASE_URL", "https://api.razorpay.com"),
			KeyID:     os.Getenv("PAYMENT_KEY_ID"),
			KeySecret: os.Getenv("PAYMENT_KEY_SECRET"),
			Currency:  envOr("PAYMENT_CURRENCY", "INR"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		},
		Presence: PresenceConfig{
			SweepInterval:      time.Minute,
			HeartbeatStaleness: 2 * time.Minute,
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Pretty: envOr("APP_ENV", "development") != "production",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
