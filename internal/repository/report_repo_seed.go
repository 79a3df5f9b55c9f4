package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/hotelreports/internal/domain"
)

// SeedReportRepository serves the fixed demo data set used by the dashboard
// when no database is configured.
type SeedReportRepository struct {
	reports   []domain.Report
	bookings  map[string][]domain.ReportBooking
	companies []domain.Option
	hotels    []domain.Option
}

func NewSeedReportRepository() *SeedReportRepository {
	return &SeedReportRepository{
		reports: []domain.Report{
			{
				ID:                "1",
				Name:              "kelvin",
				Company:           "esensi digital",
				Email:             "kelvin@wtmdigital.com",
				HotelName:         "Grand Hotel Jakarta",
				Status:            domain.ReportStatusApproved,
				ConfirmedBookings: 10,
				CancelledBookings: 5,
			},
			{
				ID:                "2",
				Name:              "budi",
				Company:           "esensi digital",
				Email:             "budi@wtmdigital.com",
				HotelName:         "Hotel Indonesia",
				Status:            domain.ReportStatusRejected,
				ConfirmedBookings: 5,
				CancelledBookings: 10,
			},
		},
		bookings: map[string][]domain.ReportBooking{
			"1": {
				{
					GuestName:  "John Doe",
					RoomType:   "Deluxe Room",
					DateIn:     day(2024, time.January, 15),
					DateOut:    day(2024, time.January, 18),
					Capacity:   "2 Adults, 1 Child",
					Additional: "Extra bed requested",
				},
				{
					GuestName:  "Jane Smith",
					RoomType:   "Suite",
					DateIn:     day(2024, time.January, 20),
					DateOut:    day(2024, time.January, 22),
					Capacity:   "1 Adult",
					Additional: "Late check-in",
				},
				{
					GuestName:  "Michael Johnson",
					RoomType:   "Standard Room",
					DateIn:     day(2024, time.January, 25),
					DateOut:    day(2024, time.January, 27),
					Capacity:   "2 Adults",
					Additional: "Airport pickup",
				},
			},
			"2": {
				{
					GuestName:  "Sarah Wilson",
					RoomType:   "Presidential Suite",
					DateIn:     day(2024, time.February, 1),
					DateOut:    day(2024, time.February, 5),
					Capacity:   "2 Adults, 2 Children",
					Additional: "Special dietary requirements",
				},
				{
					GuestName:  "David Brown",
					RoomType:   "Executive Room",
					DateIn:     day(2024, time.February, 10),
					DateOut:    day(2024, time.February, 12),
					Capacity:   "1 Adult",
					Additional: "Business meeting room access",
				},
			},
		},
		companies: []domain.Option{
			{Label: "Esensi Digital", Value: "esensi digital"},
			{Label: "WTM Digital", Value: "wtm digital"},
			{Label: "Other Company", Value: "other company"},
		},
		hotels: []domain.Option{
			{Label: "Grand Hotel Jakarta", Value: "Grand Hotel Jakarta"},
			{Label: "Hotel Indonesia", Value: "hotel Indonesia"},
			{Label: "Other Hotel", Value: "other hotel"},
		},
	}
}

func (r *SeedReportRepository) List(ctx context.Context) ([]domain.Report, error) {
	out := make([]domain.Report, len(r.reports))
	for i, rep := range r.reports {
		rep.Bookings = []domain.ReportBooking{}
		out[i] = rep
	}
	return out, nil
}

func (r *SeedReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	for _, rep := range r.reports {
		if rep.ID == id {
			rep.Bookings = []domain.ReportBooking{}
			return &rep, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (r *SeedReportRepository) ListBookings(ctx context.Context, reportID string) ([]domain.ReportBooking, error) {
	seed := r.bookings[reportID]
	out := make([]domain.ReportBooking, len(seed))
	copy(out, seed)
	return out, nil
}

func (r *SeedReportRepository) CompanyOptions(ctx context.Context) ([]domain.Option, error) {
	return append([]domain.Option(nil), r.companies...), nil
}

func (r *SeedReportRepository) HotelOptions(ctx context.Context) ([]domain.Option, error) {
	return append([]domain.Option(nil), r.hotels...), nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var _ ReportRepository = (*SeedReportRepository)(nil)
