package reports_service_api

import (
	"context"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"google.golang.org/grpc"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) GetReport(ctx context.Context, req *ReportRequest, opts ...grpc.CallOption) (*domain.Report, error) {
	out := new(domain.Report)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, GetReportMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetReportBookingsPage(ctx context.Context, req *BookingsPageRequest, opts ...grpc.CallOption) (*domain.BookingsPage, error) {
	out := new(domain.BookingsPage)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, GetReportBookingsPageMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
