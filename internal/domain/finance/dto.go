package finance

import "strings"

// DefaultPayoutMethod is recorded when mark-paid omits payment_method
const DefaultPayoutMethod = "bank_transfer"

// MarkPaidRequest records a payout to an instructor for a month.
// The amount is not checked against the pending balance.
type MarkPaidRequest struct {
	InstructorID     int64   `json:"instructor_id" validate:"required,gt=0"`
	Month            int     `json:"month" validate:"required,gte=1,lte=12"`
	Year             int     `json:"year" validate:"required,gte=2000,lte=2100"`
	AmountPaid       float64 `json:"amount_paid" validate:"required,gt=0"`
	PaymentMethod    string  `json:"payment_method" validate:"omitempty,payout_method"`
	PaymentReference string  `json:"payment_reference" validate:"omitempty,max=255"`
	PaidBy           string  `json:"paid_by" validate:"omitempty,max=255"`
}

// Normalize trims free-text fields and applies the default method
func (r *MarkPaidRequest) Normalize() {
	r.PaymentMethod = strings.ToLower(strings.TrimSpace(r.PaymentMethod))
	if r.PaymentMethod == "" {
		r.PaymentMethod = DefaultPayoutMethod
	}
	r.PaymentReference = strings.TrimSpace(r.PaymentReference)
	r.PaidBy = strings.TrimSpace(r.PaidBy)
}

// PayoutListResponse wraps payout listings with their summed amount
type PayoutListResponse struct {
	Payouts   []Payout `json:"payouts"`
	Total     int      `json:"total"`
	TotalPaid float64  `json:"total_paid"`
}

// NewPayoutListResponse builds list response
func NewPayoutListResponse(payouts []Payout) *PayoutListResponse {
	resp := &PayoutListResponse{Payouts: payouts, Total: len(payouts)}
	for _, p := range payouts {
		resp.TotalPaid += p.AmountPaid
	}
	return resp
}

// ArchiveResponse points at a stored monthly report
type ArchiveResponse struct {
	Period string `json:"period"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}
