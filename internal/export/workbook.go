package export

import (
	"fmt"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	BookingsSheet = "Bookings"
	SummarySheet  = "Summary"
)

var bookingsHeader = []interface{}{"Guest Name", "Room Type", "Date In", "Date Out", "Capacity", "Additional"}

// BuildWorkbook renders a report summary and its bookings, in the given
// order, into an XLSX file.
func BuildWorkbook(report *domain.Report, bookings []domain.ReportBooking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BookingsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(BookingsSheet, "A1", &bookingsHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			b.GuestName,
			b.RoomType,
			b.DateIn.UTC().Format(domain.TimestampLayout),
			b.DateOut.UTC().Format(domain.TimestampLayout),
			b.Capacity,
			b.Additional,
		}
		if err := f.SetSheetRow(BookingsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write booking row %d: %w", i+1, err)
		}
	}

	if report != nil {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return nil, fmt.Errorf("create summary sheet: %w", err)
		}
		summary := [][]interface{}{
			{"Report", report.ID},
			{"Agent", report.Name},
			{"Company", report.Company},
			{"Email", report.Email},
			{"Hotel", report.HotelName},
			{"Status", string(report.Status)},
			{"Confirmed bookings", report.ConfirmedBookings},
			{"Cancelled bookings", report.CancelledBookings},
			{"Exported bookings", len(bookings)},
		}
		for i, row := range summary {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
				return nil, fmt.Errorf("write summary row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the attachment name used for a report export.
func FileName(reportID string) string {
	return fmt.Sprintf("report-%s-bookings.xlsx", reportID)
}
