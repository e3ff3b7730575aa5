// Package app wires the back-office API server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/backoffice/internal/domain/customer"
	"github.com/xenking/backoffice/internal/domain/order"
	"github.com/xenking/backoffice/internal/domain/product"
	"github.com/xenking/backoffice/internal/handler"
	"github.com/xenking/backoffice/internal/seed"
	"github.com/xenking/backoffice/internal/storage/memory"
	"github.com/xenking/backoffice/pkg/health"
	"github.com/xenking/backoffice/pkg/httpmiddleware"
)

const serviceName = "backoffice-api"

// Stores are the in-memory record collections served by the API.
type Stores struct {
	Orders    *memory.Collection[order.Order]
	Products  *memory.Collection[product.Product]
	Customers *memory.Collection[customer.Customer]
}

// NewStores creates empty collections configured from cfg.
func NewStores(cfg *Config, mp metric.MeterProvider) Stores {
	opts := []memory.Option{
		memory.WithLatency(memory.Latency{Read: cfg.Latency.Read, Write: cfg.Latency.Write}),
		memory.WithFailEvery(cfg.Store.FailEvery),
		memory.WithMeterProvider(mp),
	}
	return Stores{
		Orders:    memory.New("orders", order.Key, order.Order.Clone, opts...),
		Products:  memory.New[product.Product]("products", product.Key, nil, opts...),
		Customers: memory.New[customer.Customer]("customers", customer.Key, nil, opts...),
	}
}

// NewHealth registers the server checks. Readiness waits for seeded stores.
func NewHealth(s Stores) *health.Health {
	h := health.New()
	h.AddReadinessCheck("seed", time.Second, health.SeededCheck(s.Orders, s.Products, s.Customers))
	h.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	h.AddLivenessCheck("gc", time.Second, health.GCMaxPauseCheck(time.Second), health.FailureThreshold(5))
	return h
}

// NewServerHandler builds the routed and instrumented root handler.
func NewServerHandler(ctx context.Context, m httpmiddleware.TelemetryProvider, cfg *Config, s Stores, hs *health.Health) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", hs.LiveEndpoint)
	mux.HandleFunc("GET /readyz", hs.ReadyEndpoint)
	handler.NewHandler(
		handler.HandlerConfig{MaxBodyBytes: cfg.MaxBodyBytes},
		s.Orders, s.Products, s.Customers,
	).Register(mux, "/api")

	routeFinder := httpmiddleware.MakeRouteFinder(mux)
	return httpmiddleware.Wrap(mux,
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type", httpmiddleware.RequestIDHeader},
			ExposeHeaders:    []string{httpmiddleware.RequestIDHeader},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.Instrument(serviceName, routeFinder, m),
		httpmiddleware.LogRequests(routeFinder),
		httpmiddleware.Labeler(routeFinder),
	)
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.Duration("latency.read", cfg.Latency.Read),
		zap.Duration("latency.write", cfg.Latency.Write),
	)
	ctx = zctx.Base(ctx, lg)

	stores := NewStores(cfg, m.MeterProvider())
	if _, err := seed.Load(ctx, cfg.Seed.Dir, seed.Stores{
		Orders:    stores.Orders,
		Products:  stores.Products,
		Customers: stores.Customers,
	}); err != nil {
		return errors.Wrap(err, "seed stores")
	}
	healthSvc := NewHealth(stores)
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           NewServerHandler(ctx, m, cfg, stores, healthSvc),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
