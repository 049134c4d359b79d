package service

import (
	"errors"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrDuplicatePayment    = errors.New("payment already credited")
)

// DebitOptions attaches session context to a debit ledger row.
type DebitOptions struct {
	AstrologerID    *uint
	SessionID       *uint
	DurationMinutes *decimal.Decimal
}

type CreditResult struct {
	TransactionRef string
	NewBalance     decimal.Decimal
}

type DebitResult struct {
	TransactionRef   string
	RemainingBalance decimal.Decimal
}

// WalletLedger is the only write path to a user's stored balance.
// Both operations run the balance mutation and the ledger insert in a
// single datastore transaction, with the user row locked so concurrent
// mutations serialize instead of losing updates.
type WalletLedger interface {
	Credit(userID uint, amount decimal.Decimal, method, paymentID string) (*CreditResult, error)
	Debit(userID uint, amount decimal.Decimal, description string, opts DebitOptions) (*DebitResult, error)
	Balance(userID uint) (decimal.Decimal, error)
}

type GormWalletLedger struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewGormWalletLedger(db *gorm.DB, log zerolog.Logger) *GormWalletLedger {
	return &GormWalletLedger{db: db, log: log.With().Str("component", "wallet_ledger").Logger()}
}

func (l *GormWalletLedger) Credit(userID uint, amount decimal.Decimal, method, paymentID string) (*CreditResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	var result CreditResult
	err := l.db.Transaction(func(tx *gorm.DB) error {
		// Replaying a gateway payment id must not credit twice.
		if paymentID != "" {
			var count int64
			if err := tx.Model(&models.Transaction{}).
				Where("payment_id = ?", paymentID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicatePayment
			}
		}
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		newBalance, txn := creditEntry(user, amount, method, paymentID)
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("wallet_balance", newBalance).Error; err != nil {
			return err
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		result = CreditResult{TransactionRef: txn.Reference, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Uint("user_id", userID).Str("amount", amount.String()).
		Str("ref", result.TransactionRef).Msg("wallet credited")
	return &result, nil
}

func (l *GormWalletLedger) Debit(userID uint, amount decimal.Decimal, description string, opts DebitOptions) (*DebitResult, error) {
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	var result DebitResult
	err := l.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		newBalance, txn, err := debitEntry(user, amount, description, opts)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("wallet_balance", newBalance).Error; err != nil {
			return err
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		result = DebitResult{TransactionRef: txn.Reference, RemainingBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Uint("user_id", userID).Str("amount", amount.String()).
		Str("ref", result.TransactionRef).Msg("wallet debited")
	return &result, nil
}

func (l *GormWalletLedger) Balance(userID uint) (decimal.Decimal, error) {
	var user models.User
	if err := l.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}
	return user.WalletBalance, nil
}

// creditEntry computes the new balance and the ledger row for a
// credit against the locked user row.
func creditEntry(user *models.User, amount decimal.Decimal, method, paymentID string) (decimal.Decimal, models.Transaction) {
	newBalance := user.WalletBalance.Add(amount)
	return newBalance, models.Transaction{
		UserID:        user.ID,
		Type:          domain.TxnTypeRecharge,
		Amount:        amount,
		BalanceBefore: user.WalletBalance,
		BalanceAfter:  newBalance,
		Description:   "wallet recharge",
		Reference:     uuid.NewString(),
		PaymentMethod: method,
		PaymentID:     paymentID,
		Status:        domain.TxnStatusCompleted,
	}
}

// debitEntry computes the new balance and the ledger row for a debit
// against the locked user row. The stored amount is negated; a balance
// below the amount fails with no partial debit.
func debitEntry(user *models.User, amount decimal.Decimal, description string, opts DebitOptions) (decimal.Decimal, models.Transaction, error) {
	if user.WalletBalance.LessThan(amount) {
		return decimal.Zero, models.Transaction{}, ErrInsufficientBalance
	}
	newBalance := user.WalletBalance.Sub(amount)
	return newBalance, models.Transaction{
		UserID:          user.ID,
		Type:            domain.TxnTypeDebit,
		Amount:          amount.Neg(),
		BalanceBefore:   user.WalletBalance,
		BalanceAfter:    newBalance,
		Description:     description,
		Reference:       uuid.NewString(),
		AstrologerID:    opts.AstrologerID,
		SessionID:       opts.SessionID,
		DurationMinutes: opts.DurationMinutes,
		Status:          domain.TxnStatusCompleted,
	}, nil
}

// lockUser reads the user row under SELECT ... FOR UPDATE so the
// balance cannot change between the read and the write.
func lockUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
