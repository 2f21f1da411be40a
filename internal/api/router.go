package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the HTTP router: the user-facing surface behind bearer
// auth, and the scheduler surface behind the internal key.
func Routes(h *Handlers, jwtSecret []byte, internalKey string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		r.Get("/account", h.GetAccountHandler)
		r.Get("/transactions", h.ListTransactionsHandler)
		r.Post("/fund", h.FundHandler)
		r.Post("/withdrawals", h.RequestWithdrawalHandler)
		r.Put("/pin", h.SetPinHandler)

		r.Get("/bank-accounts", h.ListBankAccountsHandler)
		r.Post("/bank-accounts", h.AddBankAccountHandler)
		r.Delete("/bank-accounts/{id}", h.RemoveBankAccountHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(InternalKeyMiddleware(internalKey))

		r.Post("/internal/interest", h.AccrueInterestHandler)
		r.Post("/internal/bonuses", h.CreditBonusHandler)
	})

	return r
}
