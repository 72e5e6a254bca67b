package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airroutes/config"
	"github.com/Domenick1991/airroutes/internal/bootstrap"
	"github.com/Domenick1991/airroutes/internal/cache"
	"github.com/Domenick1991/airroutes/internal/kafka"
	"github.com/Domenick1991/airroutes/internal/logger"
	"github.com/Domenick1991/airroutes/internal/metrics"
	"github.com/Domenick1991/airroutes/internal/repository"
	"github.com/Domenick1991/airroutes/internal/service/search"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	lg := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Search.CacheTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		lg.Warn("kafka.unavailable", "error", err)
	}

	opts := append(bootstrap.SearchOptions(cfg),
		search.WithLogger(lg),
		search.WithCache(redisCache),
		search.WithEventPublisher(producer, cfg.Kafka.SearchEventsTopic),
		search.WithMetrics(metrics.NewSearch(prometheus.DefaultRegisterer)),
	)
	searchService := search.NewSearchService(
		repository.NewSegmentRepository(pool),
		repository.NewCarrierRepository(pool),
		repository.NewTariffRepository(pool),
		repository.NewAirportRepository(pool),
		repository.NewCityRepository(pool),
		opts...,
	)

	if err := bootstrap.Run(ctx, cfg, searchService, lg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
