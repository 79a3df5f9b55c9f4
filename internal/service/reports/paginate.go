package reports

import "github.com/Domenick1991/hotelreports/internal/domain"

// Paginate slices the 1-based page out of sorted. Pages past the end are
// empty; page and pageSize must already be validated as positive.
func Paginate(sorted []domain.ReportBooking, page, pageSize int) domain.BookingsPage {
	data, pageCount := pageOf(sorted, page, pageSize)
	return domain.BookingsPage{
		Data:       data,
		PageCount:  pageCount,
		TotalCount: len(sorted),
	}
}

// pageOf copies the 1-based page out of items and reports the page count.
// The arithmetic stays within [0, len(items)] for any positive page and
// pageSize.
func pageOf[T any](items []T, page, pageSize int) ([]T, int) {
	total := len(items)
	pageCount := total / pageSize
	if total%pageSize != 0 {
		pageCount++
	}

	start := total
	if page-1 < pageCount {
		start = (page - 1) * pageSize
	}
	end := start + min(pageSize, total-start)

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, pageCount
}
