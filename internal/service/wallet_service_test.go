package service

import (
	"errors"
	"testing"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestCreditEntrySnapshotsBalances(t *testing.T) {
	user := &models.User{ID: 1, WalletBalance: decimal.RequireFromString("10.50")}
	newBalance, txn := creditEntry(user, decimal.NewFromInt(500), "upi", "pay_1")

	if !newBalance.Equal(decimal.RequireFromString("510.50")) {
		t.Errorf("newBalance = %s, want 510.50", newBalance)
	}
	if !txn.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("amount = %s, want 500", txn.Amount)
	}
	if !txn.BalanceBefore.Equal(user.WalletBalance) || !txn.BalanceAfter.Equal(newBalance) {
		t.Errorf("snapshot = %s -> %s, want 10.50 -> 510.50", txn.BalanceBefore, txn.BalanceAfter)
	}
	if txn.Type != domain.TxnTypeRecharge || txn.Status != domain.TxnStatusCompleted {
		t.Errorf("type/status = %s/%s", txn.Type, txn.Status)
	}
	if txn.PaymentID != "pay_1" || txn.PaymentMethod != "upi" {
		t.Errorf("payment fields = %q/%q", txn.PaymentID, txn.PaymentMethod)
	}
	if txn.Reference == "" {
		t.Error("reference not set")
	}
}

func TestDebitEntryNegatesAndSnapshots(t *testing.T) {
	sessionID := uint(42)
	minutes := decimal.RequireFromString("1.5")
	user := &models.User{ID: 1, WalletBalance: decimal.NewFromInt(100)}

	newBalance, txn, err := debitEntry(user, decimal.RequireFromString("15.00"), "chat session", DebitOptions{
		SessionID:       &sessionID,
		DurationMinutes: &minutes,
	})
	if err != nil {
		t.Fatalf("debitEntry: %v", err)
	}
	if !newBalance.Equal(decimal.NewFromInt(85)) {
		t.Errorf("newBalance = %s, want 85", newBalance)
	}
	if !txn.Amount.Equal(decimal.RequireFromString("-15.00")) {
		t.Errorf("stored amount = %s, want -15.00", txn.Amount)
	}
	if !txn.BalanceBefore.Equal(decimal.NewFromInt(100)) || !txn.BalanceAfter.Equal(decimal.NewFromInt(85)) {
		t.Errorf("snapshot = %s -> %s, want 100 -> 85", txn.BalanceBefore, txn.BalanceAfter)
	}
	if txn.SessionID == nil || *txn.SessionID != 42 {
		t.Error("session link missing")
	}
	if txn.Type != domain.TxnTypeDebit {
		t.Errorf("type = %s, want DEBIT", txn.Type)
	}
}

func TestDebitEntryInsufficientLeavesBalanceUnchanged(t *testing.T) {
	user := &models.User{ID: 1, WalletBalance: decimal.RequireFromString("14.99")}
	_, _, err := debitEntry(user, decimal.NewFromInt(15), "chat session", DebitOptions{})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("debitEntry = %v, want ErrInsufficientBalance", err)
	}
	if !user.WalletBalance.Equal(decimal.RequireFromString("14.99")) {
		t.Errorf("balance mutated to %s on failed debit", user.WalletBalance)
	}

	// Debiting the exact balance empties the wallet, never overdrafts.
	user.WalletBalance = decimal.NewFromInt(15)
	newBalance, _, err := debitEntry(user, decimal.NewFromInt(15), "chat session", DebitOptions{})
	if err != nil {
		t.Fatalf("debitEntry at exact balance: %v", err)
	}
	if !newBalance.IsZero() {
		t.Errorf("newBalance = %s, want 0", newBalance)
	}
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	ledger := NewGormWalletLedger(nil, zerolog.Nop())
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		if _, err := ledger.Credit(1, amount, "upi", "pay_1"); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Credit(%s) = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestDebitRejectsNegativeAmount(t *testing.T) {
	ledger := NewGormWalletLedger(nil, zerolog.Nop())
	if _, err := ledger.Debit(1, decimal.NewFromInt(-1), "chat session", DebitOptions{}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Debit(-1) = %v, want ErrInvalidAmount", err)
	}
}
