package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/hotelreports/config"
	"github.com/Domenick1991/hotelreports/internal/email"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/Domenick1991/hotelreports/internal/logger"
	"github.com/Domenick1991/hotelreports/internal/repository"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/Domenick1991/hotelreports/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		logrus.Fatalf("init logger: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.ExportTopic == "" {
		logrus.Fatal("kafka brokers and export topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo repository.ReportRepository = repository.NewSeedReportRepository()
	if cfg.Reports.Source == config.SourcePostgres {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			logrus.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		repo = repository.NewReportRepository(pool)
	}

	var opts []reports.ReportServiceOption
	if cfg.Reports.ExpandSeed {
		opts = append(opts, reports.WithExpansionPlans(reports.DefaultExpansionPlans()))
	}
	reportService := reports.NewReportService(repo, opts...)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ExportTopic)
	defer consumer.Close()

	exportWorker := worker.NewExportWorker(reportService, email.NewSender(cfg.SMTP))
	if err := exportWorker.Start(ctx, consumer); err != nil {
		logrus.Fatalf("consumer stopped: %v", err)
	}
}
