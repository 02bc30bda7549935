package finance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns admin finance routes
func (h *Handler) Routes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/overview", h.Overview)
	r.Get("/transactions", h.Transactions)

	r.Route("/monthly-summary", func(r chi.Router) {
		r.Get("/", h.MonthlySummary)
		r.Get("/export", h.ExportMonthlySummary)
		r.Post("/{year}/{month}/archive", h.ArchiveMonthlySummary)
	})

	r.Route("/payouts", func(r chi.Router) {
		r.Get("/", h.ListPayouts)
		r.Post("/mark-paid", h.MarkPaid)
		r.Get("/balances", h.PeriodBalances)
		r.Get("/instructor/{id}", h.ListInstructorPayouts)
		r.Get("/period/{year}/{month}", h.ListPeriodPayouts)
	})

	return r
}

// InstructorRoutes returns routes for the authenticated instructor
func (h *Handler) InstructorRoutes(authMiddleware, instructorOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(instructorOnly)

	r.Get("/me/payouts", h.MyPayouts)

	return r
}
