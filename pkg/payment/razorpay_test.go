package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func fakeGateway(t *testing.T, payment razorpayPaymentResp) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/payments/") {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(payment)
	}))
}

func TestVerifyPaymentChecksAmountOrderAndCapture(t *testing.T) {
	captured := razorpayPaymentResp{ID: "pay_1", OrderID: "order_1", Amount: 50000, Status: "captured"}

	cases := []struct {
		name    string
		payment razorpayPaymentResp
		orderID string
		amount  string
		want    bool
	}{
		{"captured and matching", captured, "order_1", "500", true},
		{"amount overstated", captured, "order_1", "999999", false},
		{"amount understated", captured, "order_1", "499", false},
		{"wrong order", captured, "order_2", "500", false},
		{"not captured", razorpayPaymentResp{ID: "pay_1", OrderID: "order_1", Amount: 50000, Status: "authorized"}, "order_1", "500", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := fakeGateway(t, tc.payment)
			defer srv.Close()
			p := NewRazorpayProvider(srv.URL, "key", "secret")
			ok, err := p.VerifyPayment(context.Background(), tc.orderID, "pay_1", decimal.RequireFromString(tc.amount))
			if err != nil {
				t.Fatalf("VerifyPayment: %v", err)
			}
			if ok != tc.want {
				t.Errorf("VerifyPayment = %v, want %v", ok, tc.want)
			}
		})
	}
}

func TestVerifyPaymentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	p := NewRazorpayProvider(srv.URL, "key", "secret")
	if _, err := p.VerifyPayment(context.Background(), "order_1", "pay_1", decimal.NewFromInt(500)); err == nil {
		t.Error("VerifyPayment = nil error, want gateway failure")
	}
}
