package reports

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Domenick1991/hotelreports/internal/domain"
)

// SortBookings returns a stably sorted copy of bookings. Date fields compare
// by instant, text fields case-insensitively. Equal keys keep input order in
// both directions. field must be a parsed domain.SortField; anything else
// panics.
func SortBookings(bookings []domain.ReportBooking, field domain.SortField, order domain.SortOrder) []domain.ReportBooking {
	sorted := make([]domain.ReportBooking, len(bookings))
	copy(sorted, bookings)

	compare := comparatorFor(field)
	if order == domain.SortDesc {
		asc := compare
		compare = func(a, b domain.ReportBooking) int { return asc(b, a) }
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparatorFor(field domain.SortField) func(a, b domain.ReportBooking) int {
	switch field {
	case domain.SortDateIn:
		return func(a, b domain.ReportBooking) int { return a.DateIn.Compare(b.DateIn) }
	case domain.SortDateOut:
		return func(a, b domain.ReportBooking) int { return a.DateOut.Compare(b.DateOut) }
	}
	key := textKey(field)
	return func(a, b domain.ReportBooking) int {
		return cmp.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

func textKey(field domain.SortField) func(domain.ReportBooking) string {
	switch field {
	case domain.SortGuestName:
		return func(b domain.ReportBooking) string { return b.GuestName }
	case domain.SortRoomType:
		return func(b domain.ReportBooking) string { return b.RoomType }
	case domain.SortCapacity:
		return func(b domain.ReportBooking) string { return b.Capacity }
	case domain.SortAdditional:
		return func(b domain.ReportBooking) string { return b.Additional }
	}
	panic(fmt.Sprintf("reports: unsupported sort field %q", field))
}
