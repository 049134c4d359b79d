package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nakshatra/internal/service"
	"nakshatra/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type recordingLedger struct {
	balance  decimal.Decimal
	credits  []decimal.Decimal
	payments map[string]bool
}

func newRecordingLedger() *recordingLedger {
	return &recordingLedger{payments: make(map[string]bool)}
}

func (l *recordingLedger) Credit(userID uint, amount decimal.Decimal, method, paymentID string) (*service.CreditResult, error) {
	if paymentID != "" && l.payments[paymentID] {
		return nil, service.ErrDuplicatePayment
	}
	l.payments[paymentID] = true
	l.balance = l.balance.Add(amount)
	l.credits = append(l.credits, amount)
	return &service.CreditResult{TransactionRef: "ref-1", NewBalance: l.balance}, nil
}

func (l *recordingLedger) Debit(userID uint, amount decimal.Decimal, description string, opts service.DebitOptions) (*service.DebitResult, error) {
	l.balance = l.balance.Sub(amount)
	return &service.DebitResult{TransactionRef: "ref-2", RemainingBalance: l.balance}, nil
}

func (l *recordingLedger) Balance(userID uint) (decimal.Decimal, error) {
	return l.balance, nil
}

type rejectingProvider struct{}

func (rejectingProvider) CreateOrder(_ context.Context, receipt string, amount decimal.Decimal, currency string) (*payment.Order, error) {
	return &payment.Order{OrderID: "order_1", Amount: amount, Currency: currency, Status: "created"}, nil
}

func (rejectingProvider) VerifyPayment(_ context.Context, orderID, paymentID string, amount decimal.Decimal) (bool, error) {
	return false, nil
}

func walletTestRouter(ledger service.WalletLedger, provider payment.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWalletHandler(ledger, nil, provider, nil, "INR")
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", uint(1)) })
	r.POST("/wallet/recharge/verify", h.RechargeVerify)
	return r
}

func postVerify(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/wallet/recharge/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRechargeVerifyReplayIsRejected(t *testing.T) {
	ledger := newRecordingLedger()
	r := walletTestRouter(ledger, payment.StubProvider{})
	body := `{"order_id":"stub_x","payment_id":"pay_1","amount":"999999","method":"upi"}`

	first := postVerify(r, body)
	if first.Code != http.StatusOK {
		t.Fatalf("first verify = %d, want 200: %s", first.Code, first.Body)
	}
	second := postVerify(r, body)
	if second.Code != http.StatusConflict {
		t.Fatalf("replayed verify = %d, want 409: %s", second.Code, second.Body)
	}
	if len(ledger.credits) != 1 {
		t.Errorf("credits applied = %d, want 1", len(ledger.credits))
	}
	if !ledger.balance.Equal(decimal.NewFromInt(999999)) {
		t.Errorf("balance = %s, want 999999", ledger.balance)
	}
}

func TestRechargeVerifyRejectedPaymentNeverCredits(t *testing.T) {
	ledger := newRecordingLedger()
	r := walletTestRouter(ledger, rejectingProvider{})

	w := postVerify(r, `{"order_id":"order_1","payment_id":"pay_1","amount":"500"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("verify = %d, want 400: %s", w.Code, w.Body)
	}
	if len(ledger.credits) != 0 {
		t.Errorf("credits applied = %d, want 0", len(ledger.credits))
	}
}
