package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) List(ctx context.Context) ([]domain.Report, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, company, email, hotel_name, status, confirmed_bookings, cancelled_bookings FROM reports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]domain.Report, 0)
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Company, &rep.Email, &rep.HotelName, &rep.Status, &rep.ConfirmedBookings, &rep.CancelledBookings); err != nil {
			return nil, err
		}
		rep.Bookings = []domain.ReportBooking{}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *PGReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, company, email, hotel_name, status, confirmed_bookings, cancelled_bookings FROM reports WHERE id=$1`, id)
	var rep domain.Report
	if err := row.Scan(&rep.ID, &rep.Name, &rep.Company, &rep.Email, &rep.HotelName, &rep.Status, &rep.ConfirmedBookings, &rep.CancelledBookings); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	rep.Bookings = []domain.ReportBooking{}
	return &rep, nil
}

func (r *PGReportRepository) ListBookings(ctx context.Context, reportID string) ([]domain.ReportBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT guest_name, room_type, date_in, date_out, capacity, additional FROM report_bookings WHERE report_id=$1 ORDER BY id`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.ReportBooking, 0)
	for rows.Next() {
		var b domain.ReportBooking
		if err := rows.Scan(&b.GuestName, &b.RoomType, &b.DateIn, &b.DateOut, &b.Capacity, &b.Additional); err != nil {
			return nil, err
		}
		b.DateIn = b.DateIn.UTC()
		b.DateOut = b.DateOut.UTC()
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGReportRepository) CompanyOptions(ctx context.Context) ([]domain.Option, error) {
	return r.distinctOptions(ctx, `SELECT DISTINCT company FROM reports ORDER BY company`)
}

func (r *PGReportRepository) HotelOptions(ctx context.Context) ([]domain.Option, error) {
	return r.distinctOptions(ctx, `SELECT DISTINCT hotel_name FROM reports ORDER BY hotel_name`)
}

func (r *PGReportRepository) distinctOptions(ctx context.Context, query string) ([]domain.Option, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]domain.Option, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		options = append(options, domain.Option{Label: value, Value: value})
	}
	return options, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
