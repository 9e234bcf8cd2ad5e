package controllers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const (
	envHeader           = "X-Storefront-Env"
	readinessPingBudget = 2 * time.Second
)

// Health is the register-facing liveness probe.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, map[string]string{"status": "ok"})
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteJSON(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, Redis.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessPingBudget)
		defer cancel()

		checks := map[string]string{"database": "ok"}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if dbP == nil {
				return pkgerrors.New(pkgerrors.CodeDependency, "database not configured")
			}
			if err := dbP.Ping(gctx); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable")
			}
			return nil
		})
		if redisP != nil {
			checks["redis"] = "ok"
			g.Go(func() error {
				if err := redisP.Ping(gctx); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable")
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, map[string]any{"status": "ready", "checks": checks})
	}
}
