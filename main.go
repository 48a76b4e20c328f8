// main.go
//
// Entry point for the e-commerce API server.
// Startup order:
//   - .env (optional) then environment -> config.Config; invalid config is fatal.
//   - Global zerolog logger.
//   - Store (sqlite3 / postgres / memory) with migrations applied.
//   - Account service, token codec, metrics, HTTP server.
//
// SIGINT/SIGTERM trigger a graceful shutdown.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ecommerce-api/internal/account"
	"github.com/robalobadob/ecommerce-api/internal/config"
	"github.com/robalobadob/ecommerce-api/internal/httpserver"
	"github.com/robalobadob/ecommerce-api/internal/logging"
	"github.com/robalobadob/ecommerce-api/internal/metrics"
	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open store")
	}
	defer st.Close()

	accounts, err := account.NewService(st)
	if err != nil {
		log.Fatal().Err(err).Msg("init account service")
	}

	srv := httpserver.New(httpserver.Options{
		Security:     cfg.Security,
		Codec:        security.NewCodec(cfg.Security),
		Store:        st,
		Accounts:     accounts,
		Metrics:      metrics.New(),
		ClientOrigin: cfg.Server.ClientOrigin,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr()).
			Str("driver", cfg.Database.Driver).
			Dur("token_ttl", cfg.Security.Expiration).
			Msg("starting ecommerce-api")
		errc <- srv.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown")
		}
	}
}
