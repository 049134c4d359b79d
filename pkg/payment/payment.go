package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order is a recharge order created with the gateway before checkout.
type Order struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Status   string
}

// Provider is the recharge payment gateway. CreateOrder opens a
// checkout; VerifyPayment confirms a gateway payment id belongs to the
// order, was captured, and is for the given amount, before the wallet
// is credited. The amount check is the gateway's, not the client's:
// a caller claiming a larger recharge than it paid must fail here.
type Provider interface {
	CreateOrder(ctx context.Context, receipt string, amount decimal.Decimal, currency string) (*Order, error)
	VerifyPayment(ctx context.Context, orderID, paymentID string, amount decimal.Decimal) (bool, error)
}
