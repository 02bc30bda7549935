package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultCloseSchedule runs at 00:10 UTC on the first day of each month
const DefaultCloseSchedule = "10 0 1 * *"

const closeTimeout = 2 * time.Minute

// MonthlyCloser archives the previous month's summary on a cron schedule
type MonthlyCloser struct {
	svc      *Service
	archiver *ReportArchiver
	cron     *cron.Cron
	now      func() time.Time
}

// NewMonthlyCloser registers the close job; call Start to run it
func NewMonthlyCloser(svc *Service, archiver *ReportArchiver, schedule string) (*MonthlyCloser, error) {
	if schedule == "" {
		schedule = DefaultCloseSchedule
	}

	c := &MonthlyCloser{
		svc:      svc,
		archiver: archiver,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		now:      func() time.Time { return time.Now().UTC() },
	}

	if _, err := c.cron.AddFunc(schedule, c.run); err != nil {
		return nil, fmt.Errorf("invalid monthly close schedule %q: %w", schedule, err)
	}
	return c, nil
}

// Start runs the scheduler in the background
func (c *MonthlyCloser) Start() {
	c.cron.Start()
	log.Info().Msg("Monthly finance close scheduled")
}

// Stop waits for a running close to finish
func (c *MonthlyCloser) Stop() {
	<-c.cron.Stop().Done()
}

func (c *MonthlyCloser) run() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if _, err := c.Close(ctx, PeriodOf(c.now()).Previous()); err != nil {
		log.Error().Err(err).Msg("Monthly finance close failed")
	}
}

// Close summarizes and archives one month
func (c *MonthlyCloser) Close(ctx context.Context, period Period) (*ArchiveResponse, error) {
	summary, err := c.svc.MonthlySummary(ctx, period)
	if err != nil {
		return nil, err
	}

	archived, err := c.archiver.Archive(ctx, summary)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("period", archived.Period).
		Str("key", archived.Key).
		Float64("total_revenue", summary.TotalRevenue).
		Msg("Monthly finance report archived")

	return archived, nil
}
