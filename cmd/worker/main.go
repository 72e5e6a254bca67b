package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airroutes/config"
	"github.com/Domenick1991/airroutes/internal/audit"
	"github.com/Domenick1991/airroutes/internal/kafka"
	"github.com/Domenick1991/airroutes/internal/logger"
	kafkaGo "github.com/segmentio/kafka-go"
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SearchEventsTopic)
	defer consumer.Close()

	recorder := audit.NewRecorder(lg)
	handler := kafka.SearchEventHandler(recorder.Record, func(msg kafkaGo.Message, err error) {
		lg.Warn("search.event.undecodable", "partition", msg.Partition, "offset", msg.Offset, "error", err)
	})

	lg.Info("worker.started", "topic", cfg.Kafka.SearchEventsTopic, "group", cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer stopped: %v", err)
	}
	lg.Info("worker.stopped")
}
