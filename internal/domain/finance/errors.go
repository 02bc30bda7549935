package finance

import "errors"

var (
	// ErrInstructorNotFound is returned when marking a payout for an unknown user id
	ErrInstructorNotFound = errors.New("instructor not found")

	// ErrAggregationFailed is returned when any record store read fails during a report
	ErrAggregationFailed = errors.New("finance aggregation failed")

	// ErrInvalidPeriod is returned when only one of year/month is given or values are out of range
	ErrInvalidPeriod = errors.New("invalid period: year and month must be given together")

	// ErrInvalidDateRange is returned for malformed or inverted transaction date filters
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrInternal = errors.New("internal error")
)
