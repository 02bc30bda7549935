package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tutorhub/tutorhub-api/internal/config"
	"github.com/tutorhub/tutorhub-api/internal/domain/finance"
	"github.com/tutorhub/tutorhub-api/internal/pkg/database"
	"github.com/tutorhub/tutorhub-api/internal/pkg/logger"
	"github.com/tutorhub/tutorhub-api/internal/pkg/storage"
)

// finance-close summarizes one month and archives it, for backfills and
// reruns of the scheduled close. Defaults to the previous UTC month.
func main() {
	year := flag.Int("year", 0, "period year")
	month := flag.Int("month", 0, "period month (1-12)")
	dryRun := flag.Bool("dry-run", false, "print the summary without archiving")
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	period := finance.PeriodOf(time.Now().UTC()).Previous()
	if *year != 0 || *month != 0 {
		p, err := finance.MonthPeriod(*year, *month)
		if err != nil {
			log.Fatal().Err(err).Int("year", *year).Int("month", *month).Msg("Invalid period")
		}
		period = p
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	svc := finance.NewService(finance.NewRepository(db, cfg.FinanceQueryTimeout), nil, finance.Options{
		DefaultPercentage: cfg.FinanceDefaultPayoutPercent,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *dryRun {
		summary, err := svc.MonthlySummary(ctx, period)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build monthly summary")
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			log.Fatal().Err(err).Msg("Failed to print summary")
		}
		return
	}

	reportStore, err := storage.New(storage.Config{
		Backend:   cfg.ReportStorage,
		LocalPath: cfg.ReportLocalPath,
		BaseURL:   cfg.ReportBaseURL,
		R2: storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open report storage")
	}

	closer, err := finance.NewMonthlyCloser(svc, finance.NewReportArchiver(reportStore), "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create monthly closer")
	}

	archived, err := closer.Close(ctx, period)
	if err != nil {
		log.Fatal().Err(err).Str("period", period.Label()).Msg("Monthly close failed")
	}

	log.Info().Str("period", archived.Period).Str("url", archived.URL).Msg("Done")
}
