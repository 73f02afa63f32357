package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"homenest/internal/adapters/observability"
	"homenest/internal/app"
	"homenest/internal/shared"
	mysqlrepo "homenest/internal/storage/mysql"
)

// Repairs the inconsistency window left by the non-transactional
// property/review cascades. Run from cron or by hand.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.Workers).Msg("reconciler starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	rc := app.NewReconciler(mysqlrepo.NewReviews(db), cfg.Workers)
	stats, err := rc.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliation failed")
	}
	log.Info().
		Int64("orphans_deleted", stats.OrphansDeleted).
		Int64("properties_repaired", stats.PropertiesRepaired).
		Int64("reviews_repaired", stats.ReviewsRepaired).
		Msg("reconciliation completed")
}
