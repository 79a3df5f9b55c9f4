package bootstrap

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	reportsapi "github.com/Domenick1991/hotelreports/internal/api/reports_service_api"
	"github.com/Domenick1991/hotelreports/internal/repository"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func startGRPC(t *testing.T) (*grpc.ClientConn, *health.Server) {
	t.Helper()

	service := reports.NewReportService(
		repository.NewSeedReportRepository(),
		reports.WithExpansionPlans(reports.DefaultExpansionPlans()),
	)
	srv, healthSrv := NewGRPCServer(service)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, healthSrv
}

func TestNewGRPCServer_ServesReportsAndHealth(t *testing.T) {
	conn, _ := startGRPC(t)
	ctx := context.Background()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: reportsapi.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	page, err := reportsapi.NewClient(conn).GetReportBookingsPage(ctx, &reportsapi.BookingsPageRequest{ReportID: "2", Page: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 30, page.TotalCount)
}

func TestNewRouter_Healthz(t *testing.T) {
	conn, healthSrv := startGRPC(t)
	gin.SetMode(gin.TestMode)

	store, err := NewRateLimitStore(nil)
	require.NoError(t, err)
	router, err := NewRouter(newTestConfig(t), reports.NewReportService(repository.NewSeedReportRepository()), store, healthpb.NewHealthClient(conn))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz?service="+reportsapi.ServiceName, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SERVING")

	healthSrv.Shutdown()

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
