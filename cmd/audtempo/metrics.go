// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// serveMetrics exposes handler on addr under /metrics until ctx ends.
func serveMetrics(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server", slog.Any("err", err))
	}
}
