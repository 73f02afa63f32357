package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "homenest/internal/adapters/http_server"
	"homenest/internal/adapters/identity"
	"homenest/internal/adapters/observability"
	redisad "homenest/internal/adapters/redis"
	"homenest/internal/app"
	"homenest/internal/domain"
	"homenest/internal/shared"
	mysqlrepo "homenest/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// token verifier
	var verifier domain.TokenVerifier
	if cfg.IdentityMode == "local" {
		verifier = identity.NewLocal(cfg.IdentitySecret)
		log.Warn().Msg("identity: local JWT mode (dev only)")
	} else {
		verifier, err = identity.New(cfg.IdentityBase, cfg.IdentityCreds, 50)
		if err != nil {
			log.Fatal().Err(err).Msg("identity client init failed")
		}
	}

	// deps
	props := mysqlrepo.NewProperties(db)
	reviews := mysqlrepo.NewReviews(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	propSvc := app.NewPropertyService(props, reviews, cache, cfg.CacheTTL)
	reviewSvc := app.NewReviewService(reviews, props, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Props: propSvc, Reviews: reviewSvc}, verifier)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
