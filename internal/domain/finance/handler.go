package finance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/pkg/errorhandler"
	"github.com/tutorhub/tutorhub-api/internal/pkg/logger"
	"github.com/tutorhub/tutorhub-api/internal/pkg/response"
	"github.com/tutorhub/tutorhub-api/internal/pkg/validator"
)

// Handler exposes finance reports and payout tracking over HTTP
type Handler struct {
	service  *Service
	archiver *ReportArchiver
}

// NewHandler creates finance handler. archiver may be nil, which disables archiving.
func NewHandler(service *Service, archiver *ReportArchiver) *Handler {
	return &Handler{service: service, archiver: archiver}
}

// Overview handles GET /overview
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, overview)
}

// MonthlySummary handles GET /monthly-summary?year=&month=
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.service.MonthlySummary(r.Context(), period)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, summary)
}

// ExportMonthlySummary handles GET /monthly-summary/export and streams CSV
func (h *Handler) ExportMonthlySummary(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.service.MonthlySummary(r.Context(), period)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", csvContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+archiveFileName(summary.Period)+`"`)
	w.WriteHeader(http.StatusOK)
	if err := WriteMonthlyCSV(w, summary); err != nil {
		logger.LogError(r.Context(), err, "Failed to stream monthly summary", "period", summary.Period)
	}
}

// ArchiveMonthlySummary handles POST /monthly-summary/{year}/{month}/archive
func (h *Handler) ArchiveMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if h.archiver == nil {
		response.Error(w, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "Report storage is not configured")
		return
	}

	period, ok := parsePeriodPath(w, r)
	if !ok {
		return
	}

	summary, err := h.service.MonthlySummary(r.Context(), period)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	archived, err := h.archiver.Archive(r.Context(), summary)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusBadGateway, "ARCHIVE_FAILED", "Failed to store report", err)
		return
	}
	response.Created(w, archived)
}

// Transactions handles GET /transactions?start_date=&end_date=
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	rng, err := ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	records, err := h.service.Transactions(r.Context(), rng)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, records)
}

// MarkPaid handles POST /payouts/mark-paid
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	payout, err := h.service.MarkPayoutPaid(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.Created(w, payout)
}

// ListPayouts handles GET /payouts
func (h *Handler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.service.ListPayouts(r.Context(), PayoutFilter{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, NewPayoutListResponse(payouts))
}

// ListInstructorPayouts handles GET /payouts/instructor/{id}
func (h *Handler) ListInstructorPayouts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid instructor ID")
		return
	}

	payouts, err := h.service.InstructorPayouts(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, NewPayoutListResponse(payouts))
}

// ListPeriodPayouts handles GET /payouts/period/{year}/{month}
func (h *Handler) ListPeriodPayouts(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriodPath(w, r)
	if !ok {
		return
	}

	payouts, err := h.service.PeriodPayouts(r.Context(), period)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, NewPayoutListResponse(payouts))
}

// PeriodBalances handles GET /payouts/balances?year=&month=
func (h *Handler) PeriodBalances(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}
	if period.IsAllTime() {
		response.BadRequest(w, "year and month are required")
		return
	}

	balances, err := h.service.PeriodBalances(r.Context(), period)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, balances)
}

// MyPayouts handles GET /me/payouts for the authenticated instructor
func (h *Handler) MyPayouts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID <= 0 {
		response.Unauthorized(w, "unauthorized")
		return
	}

	payouts, err := h.service.InstructorPayouts(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, NewPayoutListResponse(payouts))
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInstructorNotFound):
		response.NotFound(w, "Instructor not found")
	case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInvalidDateRange):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrAggregationFailed):
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "AGGREGATION_FAILED", "Failed to compute finance report", err)
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
	}
}

// parsePeriodQuery reads optional ?year=&month=; both or neither must be given
func parsePeriodQuery(w http.ResponseWriter, r *http.Request) (Period, bool) {
	year, err := optionalInt(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid year")
		return Period{}, false
	}
	month, err := optionalInt(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "Invalid month")
		return Period{}, false
	}

	period, err := NewPeriod(year, month)
	if err != nil {
		response.BadRequest(w, err.Error())
		return Period{}, false
	}
	return period, true
}

func parsePeriodPath(w http.ResponseWriter, r *http.Request) (Period, bool) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil {
		response.BadRequest(w, "Invalid period")
		return Period{}, false
	}

	period, err := MonthPeriod(year, month)
	if err != nil {
		response.BadRequest(w, err.Error())
		return Period{}, false
	}
	return period, true
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
