package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"recscope/internal/assessment"
	assessmenthandler "recscope/internal/assessment/handler"
	"recscope/internal/assessment/service"
	"recscope/internal/audit"
	"recscope/internal/catalog"
	"recscope/internal/facility"
	httpapi "recscope/internal/http"
	"recscope/internal/intake"
	"recscope/internal/platform/config"
	"recscope/internal/platform/httpserver"
	"recscope/internal/platform/logger"
	platformredis "recscope/internal/platform/redis"
	"recscope/internal/scope"
	scopemetrics "recscope/internal/scope/metrics"
)

// questionCacheTTL bounds how long a filtered question set outlives its
// refresh in Redis. Stale marks invalidate eagerly; the TTL is the backstop.
const questionCacheTTL = 24 * time.Hour

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	version, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		log.Error("catalog load failed", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}
	catalogs := catalog.NewInMemoryStore()
	if err := catalogs.Publish(version); err != nil {
		log.Error("catalog publish failed", "error", err)
		os.Exit(1)
	}

	var (
		assessments service.AssessmentStore
		intakes     service.IntakeStore
		facilities  service.FacilityStore
	)
	if cfg.Postgres.URL != "" {
		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
		assessments = assessment.NewPostgresStore(db)
		intakes = intake.NewPostgresStore(db)
		facilities = facility.NewPostgresStore(db)
	} else {
		log.Warn("no postgres configured, using in-memory stores")
		assessments = assessment.NewInMemoryStore()
		intakes = intake.NewInMemoryStore()
		facilities = facility.NewInMemoryStore()
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(scopemetrics.New()),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithQuestionCache(
			assessment.NewRedisQuestionCache(redisClient.Client, questionCacheTTL)))
	}

	var auditStore audit.Store
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka audit sink failed", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
	} else {
		auditStore = audit.NewInMemoryStore()
	}
	opts = append(opts, service.WithAudit(audit.NewPublisher(auditStore)))

	svc := service.New(assessments, intakes, facilities, catalogs,
		scope.NewResolver(cfg.Weights), opts...)
	router := httpapi.NewRouter(assessmenthandler.New(svc, log))

	srv := httpserver.New(cfg.Server.Addr, router)
	log.Info("starting recscope", "addr", cfg.Server.Addr, "catalog_version", version.ID)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
