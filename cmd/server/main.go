// Command server runs the tempus HTTP API.
//
// Everything is wired here: config comes from the environment, and the
// backing services (Redis, Postgres, Kafka, the zone resolver) are all
// optional. Whatever is absent degrades to an in-memory equivalent, so a
// bare `go run ./cmd/server` serves the full API with no infrastructure.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"tempus/internal/admin"
	"tempus/internal/admintoken"
	"tempus/internal/apikeys"
	calchandler "tempus/internal/calc/handler"
	calcservice "tempus/internal/calc/service"
	httpapi "tempus/internal/http"
	"tempus/internal/platform/config"
	"tempus/internal/platform/httpserver"
	"tempus/internal/platform/logger"
	"tempus/internal/platform/metrics"
	"tempus/internal/platform/redis"
	"tempus/internal/ratelimit"
	ratelimitmw "tempus/internal/ratelimit/middleware"
	ratemodels "tempus/internal/ratelimit/models"
	"tempus/internal/ratelimit/store/bucket"
	"tempus/internal/zones"
	"tempus/pkg/platform/circuit"
	"tempus/pkg/platform/usage/publisher"
	"tempus/pkg/platform/usage/relay"
	kafkasink "tempus/pkg/platform/usage/sink/kafka"
	memstore "tempus/pkg/platform/usage/store/memory"
	pgstore "tempus/pkg/platform/usage/store/postgres"
)

const (
	// tokenIssuer names this service in minted JWTs.
	tokenIssuer = "tempus"
	// serviceTokenTTL bounds how long a minted admin token stays valid.
	serviceTokenTTL = 1 * time.Hour
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	var db *sql.DB
	if cfg.Postgres.URL != "" {
		db, err = sql.Open("pgx", cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

		if err := pgstore.New(db).EnsureSchema(ctx); err != nil {
			return err
		}
		log.Info("postgres connected")
	}

	// Usage pipeline. The in-memory ring always records so the admin API
	// can answer /usage/recent. With Postgres, events additionally go
	// through the outbox and the relay ships them to Kafka; without it a
	// configured broker is produced to directly.
	ring := memstore.NewInMemoryStore(cfg.Usage.RecentLimit)

	var kafka *kafkasink.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err = kafkasink.New(cfg.Kafka.Brokers, cfg.Kafka.Topic,
			kafkasink.WithLogger(log))
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer kafka.Close(context.Background())
		log.Info("kafka connected", "topic", cfg.Kafka.Topic)
	}

	pubOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithMetrics(m),
		publisher.WithAsyncBuffer(cfg.Usage.BufferSize),
	}
	if db != nil {
		pubOpts = append(pubOpts, publisher.WithSink(pgstore.New(db)))
	} else if kafka != nil {
		pubOpts = append(pubOpts, publisher.WithSink(kafka))
	}
	pub := publisher.NewPublisher(ring, pubOpts...)
	defer pub.Close()

	var usageRelay *relay.Relay
	if db != nil {
		relayOpts := []relay.Option{relay.WithLogger(log)}
		if kafka != nil {
			relayOpts = append(relayOpts, relay.WithPublisher(kafka))
		}
		usageRelay = relay.New(db, relayOpts...)
	}

	zoneProvider := buildZoneProvider(cfg.Zones, redisClient, log, m)

	var buckets ratelimit.BucketStore = bucket.NewInMemoryBucketStore()
	if redisClient != nil {
		buckets = bucket.NewRedisBucketStore(redisClient)
	}
	limiter := ratelimit.NewLimiter(buckets, ratemodels.Limits{
		ratemodels.ClassCompute: {Requests: cfg.RateLimit.ComputePerWindow, Window: cfg.RateLimit.Window},
		ratemodels.ClassRead:    {Requests: cfg.RateLimit.ReadPerWindow, Window: cfg.RateLimit.Window},
		ratemodels.ClassAdmin:   {Requests: cfg.RateLimit.AdminPerWindow, Window: cfg.RateLimit.Window},
	})
	throttle := ratelimitmw.New(limiter, log, ratelimitmw.WithMetrics(m))

	keys := apikeys.Parse(cfg.Server.APIKeys)
	tokens := admintoken.NewService(cfg.Server.JWTSigningKey, tokenIssuer, serviceTokenTTL)

	calcSvc := calcservice.New(log, zoneProvider,
		calcservice.WithMetrics(m),
		calcservice.WithUsage(pub),
	)
	calcAPI := calchandler.New(calcSvc, log, m, keys, throttle)
	adminAPI := admin.New(tokens, admintoken.Validator{Service: tokens}, ring, limiter,
		log, cfg.Server.AdminToken, m, throttle)

	var checks []httpapi.HealthCheck
	if redisClient != nil {
		checks = append(checks, httpapi.HealthCheck{Name: "redis", Check: redisClient.Health})
	}
	if db != nil {
		checks = append(checks, httpapi.HealthCheck{Name: "postgres", Check: db.PingContext})
	}

	router := httpapi.NewRouter(log, []httpapi.Registrar{calcAPI, adminAPI}, checks...)
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	if usageRelay != nil {
		g.Go(func() error {
			return usageRelay.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildZoneProvider picks the resolver chain for the configured mode.
// Mode "http" proxies to the external resolver with the static table as
// fallback behind a circuit breaker, cached in Redis when available;
// anything else serves the static table alone.
func buildZoneProvider(cfg config.ZonesConfig, redisClient *redis.Client, log *slog.Logger, m *metrics.Metrics) zones.Provider {
	static := zones.NewStaticProvider()
	if cfg.Mode != "http" || cfg.ResolverURL == "" {
		return static
	}

	var provider zones.Provider = zones.NewFallbackProvider(
		zones.NewResolverClient(cfg.ResolverURL),
		static,
		zones.WithBreaker(circuit.New("zone-resolver")),
		zones.WithFallbackLogger(log),
		zones.WithFallbackMetrics(m),
	)
	if redisClient != nil {
		provider = zones.NewCachedProvider(provider, redisClient, cfg.CacheTTL, log, m)
	}
	return provider
}
