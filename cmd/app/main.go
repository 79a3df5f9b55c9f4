package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hotelreports/config"
	"github.com/Domenick1991/hotelreports/internal/bootstrap"
	"github.com/Domenick1991/hotelreports/internal/cache"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/Domenick1991/hotelreports/internal/logger"
	"github.com/Domenick1991/hotelreports/internal/repository"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
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

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Reports.PageCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("redis unavailable, serving without page cache")
		} else {
			redisClient = redisCache.Client()
			opts = append(opts, reports.WithCache(redisCache))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.ExportTopic != "" {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logrus.WithError(err).Warn("kafka unavailable, exports may fail")
		}
		opts = append(opts, reports.WithExportProducer(producer, cfg.Kafka.ExportTopic))
	}

	reportService := reports.NewReportService(repo, opts...)

	exportStore, err := bootstrap.NewRateLimitStore(redisClient)
	if err != nil {
		logrus.Fatalf("rate limit store: %v", err)
	}

	if err := bootstrap.Run(ctx, cfg, reportService, exportStore); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
