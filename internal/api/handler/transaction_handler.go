package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/api/metrics"
	"github.com/keyline/property-api/internal/core/ports"
)

type TransactionHandler struct {
	service ports.LedgerService
}

func NewTransactionHandler(service ports.LedgerService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Record adds a ledger line for the caller.
//
// @Summary      Record a transaction
// @Description  Exactly one of debit_cents or credit_cents must be positive.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordTransactionRequest  true  "Ledger line"
// @Success      201   {object}  transactionResponse
// @Failure      404   {object}  errorResponse  "Referenced property not found"
// @Failure      422   {object}  errorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Record(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req recordTransactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tx, err := h.service.RecordTransaction(c.Request().Context(), ports.RecordTransactionInput{
		UserID:      userID,
		Description: req.Description,
		Category:    req.Category,
		DebitCents:  req.DebitCents,
		CreditCents: req.CreditCents,
		PropertyID:  req.PropertyID,
	})
	if err != nil {
		return err
	}

	side := "credit"
	if tx.DebitCents > 0 {
		side = "debit"
	}
	metrics.LedgerTransactionsTotal.WithLabelValues(side).Inc()

	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// List returns the caller's ledger lines.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  transactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListTransactions(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, toTransactionResponse))
}

// Balance returns the caller's debit and credit totals.
//
// @Summary      Ledger balance
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  balanceResponse
// @Router       /api/transactions/balance [get]
func (h *TransactionHandler) Balance(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	b, err := h.service.Balance(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{
		DebitCents:  b.DebitCents,
		CreditCents: b.CreditCents,
		NetCents:    b.NetCents(),
	})
}
