/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newOpsRouter serves health and Prometheus metrics for chaincode-as-a-service
// deployments.
func newOpsRouter(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

func serveOps(addr string, gatherer prometheus.Gatherer, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newOpsRouter(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("serving metrics", "address", addr)
	return srv.ListenAndServe()
}
