package domain

import (
	"encoding/json"
	"time"
)

// TimestampLayout renders instants as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type ReportStatus string

const (
	ReportStatusApproved ReportStatus = "approved"
	ReportStatusRejected ReportStatus = "rejected"
	ReportStatusPending  ReportStatus = "pending"
)

// Report is one agent's booking activity for a hotel with summary counts.
type Report struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Company           string          `json:"company"`
	Email             string          `json:"email"`
	HotelName         string          `json:"hotel_name"`
	Status            ReportStatus    `json:"status"`
	ConfirmedBookings int             `json:"confirmed_bookings"`
	CancelledBookings int             `json:"cancelled_bookings"`
	Bookings          []ReportBooking `json:"bookings"`
}

// ReportBooking is one guest stay line within a report.
type ReportBooking struct {
	GuestName  string    `json:"guest_name"`
	RoomType   string    `json:"room_type"`
	DateIn     time.Time `json:"date_in"`
	DateOut    time.Time `json:"date_out"`
	Capacity   string    `json:"capacity"`
	Additional string    `json:"additional"`
}

// MarshalJSON writes date_in and date_out in TimestampLayout.
func (b ReportBooking) MarshalJSON() ([]byte, error) {
	type plain ReportBooking
	return json.Marshal(struct {
		plain
		DateIn  string `json:"date_in"`
		DateOut string `json:"date_out"`
	}{
		plain:   plain(b),
		DateIn:  b.DateIn.UTC().Format(TimestampLayout),
		DateOut: b.DateOut.UTC().Format(TimestampLayout),
	})
}

type BookingsPage struct {
	Data       []ReportBooking `json:"data"`
	PageCount  int             `json:"pageCount"`
	TotalCount int             `json:"totalCount"`
}

// Option is a label/value pair for dashboard filter dropdowns.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ReportFilter struct {
	Company  string
	Hotel    string
	Status   ReportStatus
	Page     int
	PageSize int
}

type ReportList struct {
	Reports   []Report `json:"data"`
	PageCount int      `json:"pageCount"`
	Total     int      `json:"totalCount"`
}
