package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type SortField string

const (
	SortGuestName  SortField = "guest_name"
	SortRoomType   SortField = "room_type"
	SortDateIn     SortField = "date_in"
	SortDateOut    SortField = "date_out"
	SortCapacity   SortField = "capacity"
	SortAdditional SortField = "additional"
)

var sortFieldAliases = map[string]SortField{
	"guest_name": SortGuestName,
	"guestName":  SortGuestName,
	"room_type":  SortRoomType,
	"roomType":   SortRoomType,
	"date_in":    SortDateIn,
	"dateIn":     SortDateIn,
	"date_out":   SortDateOut,
	"dateOut":    SortDateOut,
	"capacity":   SortCapacity,
	"additional": SortAdditional,
}

// ParseSortField accepts snake_case column names and their camelCase aliases.
// An empty name yields the default date_in.
func ParseSortField(name string) (SortField, error) {
	if name == "" {
		return SortDateIn, nil
	}
	f, ok := sortFieldAliases[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", ErrInvalidArgument, name)
	}
	return f, nil
}

// IsDate reports whether the field holds an instant rather than text.
func (f SortField) IsDate() bool {
	return f == SortDateIn || f == SortDateOut
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidArgument, s)
}

// BookingsQuery addresses one page of a report's bookings.
type BookingsQuery struct {
	ReportID  string    `validate:"required"`
	Page      int       `validate:"min=1"`
	PageSize  int       `validate:"min=1"`
	SortBy    SortField `validate:"required,sort_field"`
	SortOrder SortOrder `validate:"oneof=asc desc"`
}

// NewBookingsQuery returns the first page of a report sorted by date_in ascending.
func NewBookingsQuery(reportID string) BookingsQuery {
	return BookingsQuery{
		ReportID:  reportID,
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortBy:    SortDateIn,
		SortOrder: SortAsc,
	}
}

// CacheKey mirrors the dashboard query key for paginated bookings.
func (q BookingsQuery) CacheKey() string {
	return fmt.Sprintf("reports:bookings:%s:paginated:%d:%d:%s:%s", q.ReportID, q.Page, q.PageSize, q.SortBy, q.SortOrder)
}
