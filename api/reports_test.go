package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/Domenick1991/hotelreports/internal/repository"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportUseCase is a mock implementation of reports.ReportUseCase
type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) ListReports(ctx context.Context, filter domain.ReportFilter) (*domain.ReportList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportList), args.Error(1)
}

func (m *MockReportUseCase) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportUseCase) GetReportBookings(ctx context.Context, id string) ([]domain.ReportBooking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.ReportBooking), args.Error(1)
}

func (m *MockReportUseCase) GetReportBookingsPage(ctx context.Context, query domain.BookingsQuery) (*domain.BookingsPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingsPage), args.Error(1)
}

func (m *MockReportUseCase) SortedReportBookings(ctx context.Context, id string, field domain.SortField, order domain.SortOrder) ([]domain.ReportBooking, error) {
	args := m.Called(ctx, id, field, order)
	return args.Get(0).([]domain.ReportBooking), args.Error(1)
}

func (m *MockReportUseCase) RequestExport(ctx context.Context, input reports.ExportInput) (*kafka.ReportExportEvent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kafka.ReportExportEvent), args.Error(1)
}

func (m *MockReportUseCase) CompanyOptions(ctx context.Context) ([]domain.Option, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Option), args.Error(1)
}

func (m *MockReportUseCase) HotelOptions(ctx context.Context) ([]domain.Option, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Option), args.Error(1)
}

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func TestReportHandler_bookings_Defaults(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports/1/bookings", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	page := &domain.BookingsPage{
		Data:       []domain.ReportBooking{{GuestName: "John Doe 1", DateIn: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}},
		PageCount:  5,
		TotalCount: 50,
	}
	mockService.On("GetReportBookingsPage", c.Request.Context(), domain.BookingsQuery{
		ReportID:  "1",
		Page:      1,
		PageSize:  10,
		SortBy:    "date_in",
		SortOrder: domain.SortAsc,
	}).Return(page, nil)

	handler.bookings(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []map[string]string `json:"data"`
		PageCount  int                 `json:"pageCount"`
		TotalCount int                 `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.PageCount)
	assert.Equal(t, 50, body.TotalCount)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "2024-01-15T00:00:00.000Z", body.Data[0]["date_in"])

	mockService.AssertExpectations(t)
}

func TestReportHandler_bookings_QueryParams(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports/2/bookings?page=2&pageSize=5&sortBy=guest_name&sortOrder=DESC", nil)
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	mockService.On("GetReportBookingsPage", c.Request.Context(), domain.BookingsQuery{
		ReportID:  "2",
		Page:      2,
		PageSize:  5,
		SortBy:    "guest_name",
		SortOrder: domain.SortDesc,
	}).Return(&domain.BookingsPage{Data: []domain.ReportBooking{}}, nil)

	handler.bookings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestReportHandler_bookings_BadOrder(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports/1/bookings?sortOrder=sideways", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.bookings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetReportBookingsPage", mock.Anything, mock.Anything)
}

func TestReportHandler_bookings_NonNumericPage(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports/1/bookings?page=abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.bookings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_bookings_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", domain.ErrInvalidArgument, http.StatusBadRequest},
		{"upstream", errors.Join(domain.ErrUpstream, errors.New("db down")), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockReportUseCase{}
			handler := NewReportHandler(mockService)

			c, w := newTestContext("GET", "/reports/1/bookings", nil)
			c.Params = gin.Params{{Key: "id", Value: "1"}}
			mockService.On("GetReportBookingsPage", mock.Anything, mock.Anything).Return(nil, tc.err)

			handler.bookings(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestReportHandler_get_NotFound(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports/unknown", nil)
	c.Params = gin.Params{{Key: "id", Value: "unknown"}}
	mockService.On("GetReport", c.Request.Context(), "unknown").Return(nil, domain.ErrReportNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestReportHandler_list(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports?company=esensi+digital&status=approved", nil)
	list := &domain.ReportList{Reports: []domain.Report{{ID: "1"}}, PageCount: 1, Total: 1}
	mockService.On("ListReports", c.Request.Context(), domain.ReportFilter{
		Company:  "esensi digital",
		Status:   domain.ReportStatusApproved,
		Page:     1,
		PageSize: 10,
	}).Return(list, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestReportHandler_list_BadStatus(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports?status=archived", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListReports", mock.Anything, mock.Anything)
}

func TestReportHandler_export(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	body, _ := json.Marshal(map[string]string{"email": "ops@example.com", "sortBy": "date_out", "sortOrder": "desc"})
	c, w := newTestContext("POST", "/reports/1/export", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	event := &kafka.ReportExportEvent{
		ID:          "evt-1",
		ReportID:    "1",
		Email:       "ops@example.com",
		SortBy:      "date_out",
		SortOrder:   "desc",
		RequestedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	mockService.On("RequestExport", c.Request.Context(), reports.ExportInput{
		ReportID:  "1",
		Email:     "ops@example.com",
		SortBy:    "date_out",
		SortOrder: "desc",
	}).Return(event, nil)

	handler.export(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	var resp exportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "evt-1", resp.ID)
	assert.Equal(t, "2024-03-01T12:00:00.000Z", resp.RequestedAt)
	mockService.AssertExpectations(t)
}

func TestReportHandler_export_MissingEmail(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("POST", "/reports/1/export", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "RequestExport", mock.Anything, mock.Anything)
}

func TestReportHandler_export_Unavailable(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("POST", "/reports/1/export", []byte(`{"email":"ops@example.com"}`))
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	mockService.On("RequestExport", mock.Anything, mock.Anything).Return(nil, domain.ErrExportUnavailable)

	handler.export(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReportHandler_options(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	c, w := newTestContext("GET", "/reports/options/hotels", nil)
	mockService.On("HotelOptions", c.Request.Context()).Return([]domain.Option{{Label: "Hotel Indonesia", Value: "hotel Indonesia"}}, nil)

	handler.hotels(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"label":"Hotel Indonesia","value":"hotel Indonesia"}]`, w.Body.String())
	mockService.AssertExpectations(t)
}

// Routes exercised end to end against the seeded service.
func TestReportHandler_RegisterWithSeedService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := reports.NewReportService(
		repository.NewSeedReportRepository(),
		reports.WithExpansionPlans(reports.DefaultExpansionPlans()),
	)
	router := gin.New()
	NewReportHandler(service).Register(router.Group("/api/v1/reports"))

	cases := []struct {
		target string
		status int
		check  func(t *testing.T, body []byte)
	}{
		{
			target: "/api/v1/reports/1/bookings",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var page domain.BookingsPage
				require.NoError(t, json.Unmarshal(body, &page))
				assert.Len(t, page.Data, 10)
				assert.Equal(t, 50, page.TotalCount)
				assert.Equal(t, 5, page.PageCount)
			},
		},
		{
			target: "/api/v1/reports/1/bookings?page=6",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"data":[],"pageCount":5,"totalCount":50}`, string(body))
			},
		},
		{
			target: "/api/v1/reports/unknown/bookings",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"data":[],"pageCount":0,"totalCount":0}`, string(body))
			},
		},
		{
			target: "/api/v1/reports/1/bookings?page=2&pageSize=9223372036854775807",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"data":[],"pageCount":1,"totalCount":50}`, string(body))
			},
		},
		{target: "/api/v1/reports?page=3&pageSize=4611686018427387904", status: http.StatusOK},
		{target: "/api/v1/reports/1/bookings?pageSize=0", status: http.StatusBadRequest},
		{target: "/api/v1/reports/1/bookings?sortBy=price", status: http.StatusBadRequest},
		{target: "/api/v1/reports/unknown", status: http.StatusNotFound},
		{
			target: "/api/v1/reports/2/details",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var bookings []domain.ReportBooking
				require.NoError(t, json.Unmarshal(body, &bookings))
				assert.Len(t, bookings, 2)
			},
		},
		{target: "/api/v1/reports/options/companies", status: http.StatusOK},
		{target: "/api/v1/reports", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", tc.target, nil))

			assert.Equal(t, tc.status, w.Code, w.Body.String())
			if tc.check != nil {
				tc.check(t, w.Body.Bytes())
			}
		})
	}
}
