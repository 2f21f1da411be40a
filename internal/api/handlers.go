package api

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/ledger"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerService is the slice of the ledger the HTTP layer drives.
type LedgerService interface {
	Fund(ctx context.Context, userID string, amount decimal.Decimal, txRef string) (*domain.TransactionRecord, error)
	RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, bankAccountID uuid.UUID, pin []byte) (*domain.WithdrawalTicket, error)
	SetTransactionPin(ctx context.Context, userID string, pin []byte) error
	AccrueDailyInterest(ctx context.Context, userID string) (*domain.TransactionRecord, error)
	CreditReferralBonus(ctx context.Context, userID string, amount decimal.Decimal, description string) (*domain.TransactionRecord, error)
	Account(ctx context.Context, userID string) (*domain.Account, error)
	ListTransactions(ctx context.Context, userID string) ([]*domain.TransactionRecord, error)
	AddBankAccount(ctx context.Context, userID string, input ledger.BankAccountInput) (*domain.BankAccount, error)
	RemoveBankAccount(ctx context.Context, userID string, id uuid.UUID) error
	ListBankAccounts(ctx context.Context, userID string) ([]*domain.BankAccount, error)
}

// Handlers holds the ledger service the HTTP endpoints call into.
type Handlers struct {
	service LedgerService
	log     zerolog.Logger
}

// NewHandlers creates a new set of HTTP handlers.
func NewHandlers(service LedgerService, baseLogger *zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     baseLogger.With().Str("component", "http_api").Logger(),
	}
}

type fundRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref"`
}

type withdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	BankAccountID uuid.UUID       `json:"bank_account_id"`
	Pin           string          `json:"pin"`
}

type setPinRequest struct {
	Pin string `json:"pin"`
}

type bankAccountRequest struct {
	BankName      string `json:"bank_name"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
}

// accountResponse is the client-facing balance snapshot. The stored PIN
// hash never crosses the API boundary; clients only learn whether a PIN
// exists.
type accountResponse struct {
	ID                     uuid.UUID       `json:"id"`
	AvailableForWithdrawal decimal.Decimal `json:"available_for_withdrawal"`
	TotalEarnings          decimal.Decimal `json:"total_earnings"`
	PendingEarnings        decimal.Decimal `json:"pending_earnings"`
	BonusEarnings          decimal.Decimal `json:"bonus_earnings"`
	TotalFundedAmount      decimal.Decimal `json:"total_funded_amount"`
	HasTransactionPin      bool            `json:"has_transaction_pin"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func buildAccountResponse(acct *domain.Account) accountResponse {
	return accountResponse{
		ID:                     acct.ID,
		AvailableForWithdrawal: acct.AvailableForWithdrawal,
		TotalEarnings:          acct.TotalEarnings,
		PendingEarnings:        acct.PendingEarnings,
		BonusEarnings:          acct.BonusEarnings,
		TotalFundedAmount:      acct.TotalFundedAmount,
		HasTransactionPin:      acct.HasTransactionPin(),
		CreatedAt:              acct.CreatedAt,
		UpdatedAt:              acct.UpdatedAt,
	}
}

type internalInterestRequest struct {
	UserID string `json:"user_id"`
}

type internalBonusRequest struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// FundHandler credits a verified deposit to the caller's account.
func (h *Handlers) FundHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.Fund(r.Context(), userID, req.Amount, req.TransactionRef)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// RequestWithdrawalHandler debits the balance and queues a review ticket.
func (h *Handlers) RequestWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req withdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticket, err := h.service.RequestWithdrawal(r.Context(), userID, req.Amount, req.BankAccountID, []byte(req.Pin))
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, ticket)
}

// SetPinHandler creates or replaces the caller's withdrawal PIN.
func (h *Handlers) SetPinHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req setPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetTransactionPin(r.Context(), userID, []byte(req.Pin)); err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAccountHandler returns the caller's balance snapshot.
func (h *Handlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	acct, err := h.service.Account(r.Context(), userID)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, buildAccountResponse(acct))
}

// ListTransactionsHandler returns the caller's ledger entries, newest first.
func (h *Handlers) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.service.ListTransactions(r.Context(), userID)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	if records == nil {
		records = []*domain.TransactionRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

// AddBankAccountHandler registers a payout destination.
func (h *Handlers) AddBankAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bank, err := h.service.AddBankAccount(r.Context(), userID, ledger.BankAccountInput{
		BankName:      req.BankName,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, bank)
}

// ListBankAccountsHandler returns the caller's payout destinations.
func (h *Handlers) ListBankAccountsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	banks, err := h.service.ListBankAccounts(r.Context(), userID)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	if banks == nil {
		banks = []*domain.BankAccount{}
	}
	h.writeJSON(w, http.StatusOK, banks)
}

// RemoveBankAccountHandler deletes one of the caller's payout destinations.
func (h *Handlers) RemoveBankAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetAuthUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid bank account id")
		return
	}

	if err := h.service.RemoveBankAccount(r.Context(), userID, id); err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AccrueInterestHandler runs the daily interest credit for one user. Called
// by the scheduler through the internal surface.
func (h *Handlers) AccrueInterestHandler(w http.ResponseWriter, r *http.Request) {
	var req internalInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.AccrueDailyInterest(r.Context(), req.UserID)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	if rec == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// CreditBonusHandler credits a referral bonus for one user.
func (h *Handlers) CreditBonusHandler(w http.ResponseWriter, r *http.Request) {
	var req internalBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.CreditReferralBonus(r.Context(), req.UserID, req.Amount, req.Description)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// writeLedgerError maps the ledger's error taxonomy onto HTTP statuses.
func (h *Handlers) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, ledger.ErrFundingBelowMinimum),
		errors.Is(err, ledger.ErrWithdrawalBelowMinimum),
		errors.Is(err, ledger.ErrInvalidPinFormat),
		errors.Is(err, ledger.ErrAccountNameUnresolved):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrInvalidPin):
		h.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ledger.ErrPinNotSet):
		h.writeError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrBankAccountNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrDuplicateBankAccount):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrPaymentNotVerified):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		h.writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}
