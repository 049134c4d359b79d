package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"nakshatra/config"
	"nakshatra/internal/auth"
	"nakshatra/internal/domain"
	"nakshatra/internal/models"
	"nakshatra/internal/repository"
	"nakshatra/pkg/sms"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrInvalidOTP     = errors.New("invalid or expired code")
	ErrTooManyRetries = errors.New("too many verification attempts")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// AuthService implements phone-OTP login. Codes are hashed before
// storage and delivered through the external SMS gateway; users are
// created on their first successful verification.
type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	otpRepo  *repository.OTPRepository
	sender   sms.Sender
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, otpRepo *repository.OTPRepository, sender sms.Sender, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		otpRepo:  otpRepo,
		sender:   sender,
		log:      log.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

func (s *AuthService) SendOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	otp := &models.OTP{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(s.cfg.OTP.Expiry),
	}
	if err := s.otpRepo.Create(otp); err != nil {
		return err
	}
	if err := s.sender.SendOTP(ctx, phone, code); err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("otp delivery failed")
		return err
	}
	return nil
}

// VerifyOTP checks the code and returns the user plus fresh tokens,
// creating the account on first verification.
func (s *AuthService) VerifyOTP(phone, code string) (*models.User, string, string, error) {
	otp, err := s.otpRepo.GetLatestPending(phone, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidOTP
		}
		return nil, "", "", err
	}
	if otp.Attempts >= s.cfg.OTP.MaxAttempts {
		return nil, "", "", ErrTooManyRetries
	}
	if err := bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)); err != nil {
		_ = s.otpRepo.IncrementAttempts(otp.ID)
		return nil, "", "", ErrInvalidOTP
	}
	if err := s.otpRepo.MarkVerified(otp.ID, s.now()); err != nil {
		return nil, "", "", err
	}

	user, err := s.userRepo.GetByPhone(phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{Phone: phone, Role: domain.RoleUser}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", "", err
		}
		s.log.Info().Uint("user_id", user.ID).Msg("user created on first verification")
	} else if err != nil {
		return nil, "", "", err
	}

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, user.ID, user.Phone, user.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, user.ID, user.Phone, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
