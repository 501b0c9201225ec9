package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"

	"server/internal/infra"
	"server/internal/notify"
)

// The notifier is a run-to-completion job: it sweeps for items accepted 30+
// days ago whose donors have not been reminded yet, emails each donor, and
// prints a JSON summary to stdout for the scheduler's logs.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := cfg.ValidateSweep(); err != nil {
		printJSON(map[string]string{"error": err.Error()})
		os.Exit(1)
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg.SweepDatabaseURL())
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect database")
		printJSON(map[string]string{"error": err.Error()})
		os.Exit(1)
	}
	defer dbpool.Close()

	sweeper := &notify.Sweeper{
		SQL:     infra.NewSQLRunner(dbpool, logger),
		Sender:  notify.NewResendClient(cfg.ResendAPIKey, cfg.EmailFrom, cfg.ResendBaseURL),
		OrgName: cfg.OrgName,
		Logger:  logger,
	}

	summary, err := sweeper.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("notification sweep failed")
		printJSON(map[string]string{"error": err.Error()})
		os.Exit(1)
	}

	logger.Info().Int("results", len(summary.Results)).Msg(summary.Message)
	printJSON(summary)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
