package bootstrap

import (
	"context"
	"time"

	reportsapi "github.com/Domenick1991/hotelreports/internal/api/reports_service_api"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// NewGRPCServer registers the reports service and the standard health service.
func NewGRPCServer(service reports.ReportUseCase) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger))

	reportsapi.Register(srv, reportsapi.NewServer(service))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(reportsapi.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	return srv, healthSrv
}

// newHealthzHandler serves GET /healthz from the gRPC health service.
// A "service" query parameter checks a single service.
func newHealthzHandler(client healthpb.HealthClient) *runtime.ServeMux {
	return runtime.NewServeMux(runtime.WithHealthzEndpoint(client))
}

func unaryLogger(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	entry := logrus.WithFields(logrus.Fields{
		"method":   info.FullMethod,
		"code":     status.Code(err).String(),
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Warn("grpc request failed")
	} else {
		entry.Info("grpc request processed")
	}
	return resp, err
}
