package reports_service_api

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "hotelreports.reports.v1.ReportsService"

const (
	GetReportMethod             = "/" + ServiceName + "/GetReport"
	GetReportBookingsPageMethod = "/" + ServiceName + "/GetReportBookingsPage"
)

// BookingsPageRequest mirrors the HTTP query. Zero values take the defaults.
type BookingsPageRequest struct {
	ReportID  string `json:"reportId"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"pageSize,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

type ReportRequest struct {
	ID string `json:"id"`
}

type ReportsServiceServer interface {
	GetReport(ctx context.Context, req *ReportRequest) (*domain.Report, error)
	GetReportBookingsPage(ctx context.Context, req *BookingsPageRequest) (*domain.BookingsPage, error)
}

// Server exposes the report use case over gRPC with JSON payloads.
type Server struct {
	reports reports.ReportUseCase
}

func NewServer(reports reports.ReportUseCase) *Server {
	return &Server{reports: reports}
}

func (s *Server) GetReport(ctx context.Context, req *ReportRequest) (*domain.Report, error) {
	report, err := s.reports.GetReport(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return report, nil
}

func (s *Server) GetReportBookingsPage(ctx context.Context, req *BookingsPageRequest) (*domain.BookingsPage, error) {
	query := domain.NewBookingsQuery(req.ReportID)
	if req.Page != 0 {
		query.Page = req.Page
	}
	if req.PageSize != 0 {
		query.PageSize = req.PageSize
	}
	if req.SortBy != "" {
		query.SortBy = domain.SortField(req.SortBy)
	}
	order, err := domain.ParseSortOrder(req.SortOrder)
	if err != nil {
		return nil, toStatus(err)
	}
	query.SortOrder = order

	page, err := s.reports.GetReportBookingsPage(ctx, query)
	if err != nil {
		return nil, toStatus(err)
	}
	return page, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrReportNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func Register(registrar grpc.ServiceRegistrar, srv ReportsServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc is declared by hand; payloads travel through the json codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReportsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetReport", Handler: getReportHandler},
		{MethodName: "GetReportBookingsPage", Handler: getReportBookingsPageHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reports_service",
}

func getReportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReportsServiceServer).GetReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetReportMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReportsServiceServer).GetReport(ctx, req.(*ReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getReportBookingsPageHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BookingsPageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReportsServiceServer).GetReportBookingsPage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetReportBookingsPageMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReportsServiceServer).GetReportBookingsPage(ctx, req.(*BookingsPageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _ ReportsServiceServer = (*Server)(nil)
