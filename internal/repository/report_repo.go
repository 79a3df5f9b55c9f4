package repository

import (
	"context"

	"github.com/Domenick1991/hotelreports/internal/domain"
)

// ReportRepository is the report lookup boundary. GetByID returns
// domain.ErrReportNotFound for unknown ids; ListBookings returns an empty
// slice for them.
type ReportRepository interface {
	List(ctx context.Context) ([]domain.Report, error)
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListBookings(ctx context.Context, reportID string) ([]domain.ReportBooking, error)
	CompanyOptions(ctx context.Context) ([]domain.Option, error)
	HotelOptions(ctx context.Context) ([]domain.Option, error)
}
