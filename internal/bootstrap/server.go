package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/hotelreports/api"
	"github.com/Domenick1991/hotelreports/config"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/ulule/limiter/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerSpecURL = "/swagger/reports.swagger.json"

// Run starts the gRPC and HTTP servers and blocks until ctx is canceled or a
// server fails.
func Run(ctx context.Context, cfg *config.Config, service reports.ReportUseCase, exportStore limiter.Store) error {
	grpcSrv, healthSrv := NewGRPCServer(service)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		lis.Close()
		return fmt.Errorf("dial gRPC %s: %w", lis.Addr(), err)
	}
	defer conn.Close()

	router, err := NewRouter(cfg, service, exportStore, healthpb.NewHealthClient(conn))
	if err != nil {
		lis.Close()
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logrus.WithField("address", lis.Addr().String()).Info("grpc server started")
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- fmt.Errorf("serve gRPC: %w", err)
		}
	}()

	go func() {
		logrus.WithField("address", cfg.HTTP.Address).Info("http server started")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve http: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		grpcSrv.Stop()
		httpSrv.Close()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		healthSrv.Shutdown()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		grpcSrv.GracefulStop()
		logrus.Info("servers stopped")
		return nil
	}
}

// NewRouter builds the gin engine with middleware, docs and report routes.
// A nil health client leaves /healthz unmounted.
func NewRouter(cfg *config.Config, service reports.ReportUseCase, exportStore limiter.Store, healthClient healthpb.HealthClient) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	if cfg.HTTP.RequestTimeoutSecs > 0 {
		router.Use(RequestTimeout(time.Duration(cfg.HTTP.RequestTimeoutSecs) * time.Second))
	}
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(cfg.HTTP.AllowedOrigins)))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if healthClient != nil {
		router.GET("/healthz", gin.WrapH(newHealthzHandler(healthClient)))
	}

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerSpecURL))))
	}

	var exportMiddleware []gin.HandlerFunc
	if exportStore != nil {
		limit, err := ExportRateLimiter(cfg.RateLimit.Export, exportStore)
		if err != nil {
			return nil, err
		}
		exportMiddleware = append(exportMiddleware, limit)
	}

	api.NewReportHandler(service).Register(router.Group("/api/v1/reports"), exportMiddleware...)
	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
