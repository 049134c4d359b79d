package service

import (
	"errors"
	"time"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidSessionType    = errors.New("invalid session type")
	ErrAstrologerNotFound    = errors.New("astrologer not found")
	ErrAstrologerUnavailable = errors.New("astrologer is not available for sessions")
	ErrSessionNotFound       = errors.New("active session not found")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
)

type astrologerStore interface {
	GetByID(id uint) (*models.Astrologer, error)
	IncrementTotalCalls(id uint) error
}

type sessionStore interface {
	Create(s *models.ChatSession) error
	GetActiveByUserID(userID uint) (*models.ChatSession, error)
	GetActiveOwned(id, userID uint) (*models.ChatSession, error)
	GetCompletedOwned(id, userID uint) (*models.ChatSession, error)
	Complete(id uint, endTime time.Time, duration, totalCost decimal.Decimal, reason string) error
	SetRating(id uint, rating int, review, tags string) error
}

type reviewSubmitter interface {
	Submit(sessionID, userID, astrologerID uint, rating int, comment, tags string) error
}

// SessionService owns the paid-session lifecycle: the affordability
// gate before start, the auto-end of a previous session, and the
// end-of-session settlement through the wallet ledger.
type SessionService struct {
	astrologers astrologerStore
	sessions    sessionStore
	ledger      WalletLedger
	reviews     reviewSubmitter
	log         zerolog.Logger
	now         func() time.Time
}

func NewSessionService(astrologers astrologerStore, sessions sessionStore, ledger WalletLedger, reviews reviewSubmitter, log zerolog.Logger) *SessionService {
	return &SessionService{
		astrologers: astrologers,
		sessions:    sessions,
		ledger:      ledger,
		reviews:     reviews,
		log:         log.With().Str("component", "session").Logger(),
		now:         time.Now,
	}
}

// BalanceCheck is the read-only affordability pre-check result.
type BalanceCheck struct {
	CanStart         bool             `json:"can_start"`
	CurrentBalance   decimal.Decimal  `json:"current_balance"`
	PricePerMinute   decimal.Decimal  `json:"price_per_minute"`
	MinimumRequired  decimal.Decimal  `json:"minimum_required"`
	EstimatedMinutes int64            `json:"estimated_minutes"`
	Shortfall        *decimal.Decimal `json:"shortfall,omitempty"`
}

// SessionReceipt is returned when a session settles.
type SessionReceipt struct {
	SessionID        uint            `json:"session_id"`
	DurationMinutes  decimal.Decimal `json:"duration_minutes"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TransactionRef   string          `json:"transaction_ref"`
	EndReason        string          `json:"end_reason,omitempty"`
}

// Start creates a new ACTIVE session. The balance is only checked, not
// reserved: the actual debit happens at settlement. If the user still
// has a running session it is settled first with the auto-end reason,
// so the single-active-session invariant holds before the insert.
func (s *SessionService) Start(userID, astrologerID uint, sessionType string) (*models.ChatSession, error) {
	if !domain.ValidSessionType(sessionType) {
		return nil, ErrInvalidSessionType
	}
	astrologer, err := s.astrologers.GetByID(astrologerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAstrologerNotFound
		}
		return nil, err
	}
	if !astrologer.SessionEligible() {
		return nil, ErrAstrologerUnavailable
	}
	price := astrologer.PriceFor(sessionType)

	balance, err := s.ledger.Balance(userID)
	if err != nil {
		return nil, err
	}
	minimumRequired := price.Mul(decimal.NewFromInt(domain.MinimumBillableMinutes))
	if balance.LessThan(minimumRequired) {
		return nil, ErrInsufficientBalance
	}

	if active, err := s.sessions.GetActiveByUserID(userID); err != nil {
		return nil, err
	} else if active != nil {
		if _, err := s.End(active.ID, userID, domain.EndReasonAuto); err != nil {
			return nil, err
		}
		s.log.Info().Uint("user_id", userID).Uint("session_id", active.ID).
			Msg("previous session ended automatically")
	}

	uid := userID
	session := &models.ChatSession{
		UserID:         userID,
		AstrologerID:   astrologerID,
		SessionType:    sessionType,
		StartTime:      s.now(),
		PricePerMinute: price,
		Status:         domain.SessionStatusActive,
		ActiveUserID:   &uid,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// End settles an ACTIVE session: exact fractional-minute cost, debit
// through the ledger, then the terminal status flip. When the debit
// fails on balance the session stays ACTIVE so a later retry can
// settle it.
func (s *SessionService) End(sessionID, userID uint, reason string) (*SessionReceipt, error) {
	session, err := s.sessions.GetActiveOwned(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	endTime := s.now()
	duration, totalCost := SessionCost(session.StartTime, endTime, session.PricePerMinute)

	debit, err := s.ledger.Debit(userID, totalCost, sessionDescription(session.SessionType), DebitOptions{
		AstrologerID:    &session.AstrologerID,
		SessionID:       &session.ID,
		DurationMinutes: &duration,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Complete(session.ID, endTime, duration, totalCost, reason); err != nil {
		return nil, err
	}

	// Counter bump is best-effort; settlement already succeeded.
	if err := s.astrologers.IncrementTotalCalls(session.AstrologerID); err != nil {
		s.log.Warn().Err(err).Uint("astrologer_id", session.AstrologerID).
			Msg("failed to increment total calls")
	}

	return &SessionReceipt{
		SessionID:        session.ID,
		DurationMinutes:  duration,
		TotalCost:        totalCost,
		RemainingBalance: debit.RemainingBalance,
		TransactionRef:   debit.TransactionRef,
		EndReason:        reason,
	}, nil
}

// Rate is only permitted on a COMPLETED session owned by the caller.
// Repeated calls overwrite the previous rating.
func (s *SessionService) Rate(sessionID, userID uint, rating int, review, tags string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	session, err := s.sessions.GetCompletedOwned(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if err := s.sessions.SetRating(session.ID, rating, review, tags); err != nil {
		return err
	}
	if err := s.reviews.Submit(session.ID, userID, session.AstrologerID, rating, review, tags); err != nil {
		return err
	}
	return nil
}

// ValidateBalance is the side-effect-free affordability pre-check.
func (s *SessionService) ValidateBalance(userID, astrologerID uint, sessionType string) (*BalanceCheck, error) {
	if !domain.ValidSessionType(sessionType) {
		return nil, ErrInvalidSessionType
	}
	astrologer, err := s.astrologers.GetByID(astrologerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAstrologerNotFound
		}
		return nil, err
	}
	price := astrologer.PriceFor(sessionType)
	balance, err := s.ledger.Balance(userID)
	if err != nil {
		return nil, err
	}
	minimumRequired := price.Mul(decimal.NewFromInt(domain.MinimumBillableMinutes))
	check := &BalanceCheck{
		CanStart:        !balance.LessThan(minimumRequired),
		CurrentBalance:  balance,
		PricePerMinute:  price,
		MinimumRequired: minimumRequired,
	}
	if price.IsPositive() {
		check.EstimatedMinutes = balance.Div(price).IntPart()
	}
	if !check.CanStart {
		shortfall := minimumRequired.Sub(balance)
		check.Shortfall = &shortfall
	}
	return check, nil
}

// SessionCost computes the billed duration (fractional minutes, no
// ceiling) and the cost rounded to two decimal places.
func SessionCost(start, end time.Time, pricePerMinute decimal.Decimal) (minutes, cost decimal.Decimal) {
	seconds := decimal.NewFromFloat(end.Sub(start).Seconds())
	exactMinutes := seconds.Div(decimal.NewFromInt(60))
	cost = exactMinutes.Mul(pricePerMinute).Round(2)
	minutes = exactMinutes.Round(2)
	return minutes, cost
}

func sessionDescription(sessionType string) string {
	switch sessionType {
	case domain.SessionTypeChat:
		return "chat session"
	case domain.SessionTypeCall:
		return "call session"
	case domain.SessionTypeVideo:
		return "video session"
	default:
		return "session"
	}
}
