// Copyright (C) 2025 SAGE-X Project
//
// This file is part of vestauth-go.
//
// vestauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vestauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with vestauth-go.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chiware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/vestauth/vestauth-go/pkg/binary"
	"github.com/vestauth/vestauth-go/pkg/config"
	"github.com/vestauth/vestauth-go/pkg/logging"
	"github.com/vestauth/vestauth-go/pkg/metrics"
	"github.com/vestauth/vestauth-go/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var optional bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve a verification endpoint backed by the vestauth engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			collector, err := metrics.NewCollector(reg)
			if err != nil {
				return err
			}

			r := newRouter(a.binary(binary.WithObserver(collector)), reg, a.logger, optional)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return listenAndServe(ctx, &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}, a.logger)
		},
	}

	serveCmd.Flags().String(config.KeyAddr, ":8080", "the address to bind to")
	Must(a.v.BindPFlag(config.KeyAddr, serveCmd.Flags().Lookup(config.KeyAddr)))
	serveCmd.Flags().BoolVar(&optional, "optional", false, "let requests without signature headers through")

	return serveCmd
}

// newRouter mounts the verified /whoami endpoint, /health, and /metrics
func newRouter(b *binary.Binary, reg *prometheus.Registry, logger zerolog.Logger, optional bool) chi.Router {
	auth := server.NewAuthMiddleware(b)
	auth.SetOptional(optional)
	auth.SetErrorHandler(jsonErrorHandler)

	r := chi.NewRouter()
	r.Use(chiware.RequestID)
	r.Use(chiware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(auth.Wrap)
		r.Handle("/whoami", http.HandlerFunc(whoami))
	})

	return r
}

// whoami echoes the engine result for the verified request
func whoami(w http.ResponseWriter, r *http.Request) {
	result, ok := server.ResultFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"verified": false})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func jsonErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, binary.ErrProtocolViolation) {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger attaches logger to each request context and logs completion
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiware.NewWrapResponseWriter(w, r.ProtoMajor)

			l := logger.With().Str("request_id", chiware.GetReqID(r.Context())).Logger()
			next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), l)))

			l.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request complete")
		})
	}
}

// listenAndServe runs srv until ctx is done, then shuts it down
func listenAndServe(ctx context.Context, srv *http.Server, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("vestauth-go serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info().Msg("vestauth-go shutting down")
	return srv.Shutdown(shutdownCtx)
}
