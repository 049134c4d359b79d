package handler

import (
	"net/http"

	"nakshatra/internal/middleware"
	"nakshatra/internal/repository"
	"nakshatra/internal/service"
	"nakshatra/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	ledger   service.WalletLedger
	txnRepo  *repository.TransactionRepository
	provider payment.Provider
	notifSvc *service.NotificationService
	currency string
}

func NewWalletHandler(ledger service.WalletLedger, txnRepo *repository.TransactionRepository, provider payment.Provider, notifSvc *service.NotificationService, currency string) *WalletHandler {
	return &WalletHandler{
		ledger:   ledger,
		txnRepo:  txnRepo,
		provider: provider,
		notifSvc: notifSvc,
		currency: currency,
	}
}

func (h *WalletHandler) Balance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	balance, err := h.ledger.Balance(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"balance": balance, "currency": h.currency})
}

// Recharge opens a gateway order for the requested amount. The wallet
// is only credited after Verify confirms the payment was captured.
func (h *WalletHandler) Recharge(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		respondServiceError(c, service.ErrInvalidAmount)
		return
	}
	receipt := "rcpt_" + uuid.NewString()[:18]
	order, err := h.provider.CreateOrder(c.Request.Context(), receipt, req.Amount, h.currency)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "payment gateway unavailable")
		return
	}
	respondOK(c, http.StatusCreated, "order created", gin.H{
		"order_id": order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// RechargeVerify confirms the gateway payment and credits the wallet.
func (h *WalletHandler) RechargeVerify(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		OrderID   string          `json:"order_id" binding:"required"`
		PaymentID string          `json:"payment_id" binding:"required"`
		Amount    decimal.Decimal `json:"amount" binding:"required"`
		Method    string          `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	ok, err := h.provider.VerifyPayment(c.Request.Context(), req.OrderID, req.PaymentID, req.Amount)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "payment verification failed")
		return
	}
	if !ok {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "payment not captured")
		return
	}
	result, err := h.ledger.Credit(userID, req.Amount, req.Method, req.PaymentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if h.notifSvc != nil {
		_ = h.notifSvc.NotifyRechargeConfirmed(userID, req.Amount, result.TransactionRef)
	}
	respondOK(c, http.StatusOK, "wallet recharged", gin.H{
		"balance":         result.NewBalance,
		"transaction_ref": result.TransactionRef,
	})
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit, offset := pageParams(c)
	txns, total, err := h.txnRepo.ListByUserID(userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, txns, NewPagination(page, limit, total))
}
