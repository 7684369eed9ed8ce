package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/policyexpert/api/internal/config"
	"github.com/policyexpert/api/internal/middleware"
	"github.com/policyexpert/api/internal/models"
	"github.com/policyexpert/api/internal/service"
	"github.com/policyexpert/api/internal/storage"
	"github.com/policyexpert/api/internal/storage/sqlite"
	"github.com/policyexpert/api/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.SeedSampleData {
		if err := seedSampleInfo(store); err != nil {
			slog.Error("Failed to seed sample data", "error", err)
			os.Exit(1)
		}
		slog.Info("Sample customer info seeded")
	}

	svc := service.NewCustomerService(store, service.Info{
		Environment: cfg.Environment,
		Port:        strconv.Itoa(cfg.Port),
	})

	mux := http.NewServeMux()
	svc.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(handler)

	// Reverse-proxy deployments mount the service under a path prefix.
	if prefix := strings.TrimSuffix(cfg.RootPath, "/"); prefix != "" {
		handler = http.StripPrefix(prefix, handler)
	}

	// h2c keeps HTTP/2 working behind TLS-terminating proxies.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting",
		"address", addr,
		"environment", cfg.Environment,
		"root_path", cfg.RootPath,
	)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// seedSampleInfo loads the demo customer_info rows used by UI walkthroughs.
func seedSampleInfo(store storage.Store) error {
	ctx := context.Background()
	samples := []models.CustomerInfoUpdate{
		{
			CustomerName:       "Diya",
			FinalPremiumAmount: ptr("₹15,000"),
			AddonsWithAmount:   ptr("Consumables Coverage: ₹1,500, Extra Car Protect: ₹2,000"),
		},
		{
			CustomerName:       "Lakshmi Srinivas",
			FinalPremiumAmount: ptr("₹8,500"),
			AddonsWithAmount:   ptr("Dental Coverage: ₹1,200"),
		},
	}
	for _, s := range samples {
		if _, err := store.UpsertCustomerInfo(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func ptr(s string) *string { return &s }
