package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/hotelreports/internal/domain"
)

// BookingSource is the part of the report lookup the aggregator depends on.
type BookingSource interface {
	ListBookings(ctx context.Context, reportID string) ([]domain.ReportBooking, error)
}

// ExpansionPlan replicates a report's seed bookings into a larger synthetic set.
// Entry i copies seed[i%len(seed)] and checks in Start plus i/Step days.
type ExpansionPlan struct {
	Count int
	Step  int
	Start time.Time
	Stay  time.Duration
}

// DefaultExpansionPlans are the demo data cadences for the two seeded reports.
func DefaultExpansionPlans() map[string]ExpansionPlan {
	return map[string]ExpansionPlan{
		"1": {
			Count: 50,
			Step:  3,
			Start: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Stay:  2 * 24 * time.Hour,
		},
		"2": {
			Count: 30,
			Step:  2,
			Start: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			Stay:  3 * 24 * time.Hour,
		},
	}
}

// Aggregator produces the full unsorted candidate set of a report.
type Aggregator struct {
	source BookingSource
	plans  map[string]ExpansionPlan
}

// NewAggregator returns an aggregator over source. A nil plans map disables
// expansion and the source rows are returned unchanged.
func NewAggregator(source BookingSource, plans map[string]ExpansionPlan) *Aggregator {
	return &Aggregator{source: source, plans: plans}
}

// Collect returns an empty slice for unknown reports. Failures of the
// source are wrapped with domain.ErrUpstream.
func (a *Aggregator) Collect(ctx context.Context, reportID string) ([]domain.ReportBooking, error) {
	seed, err := a.source.ListBookings(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings of report %s: %w", domain.ErrUpstream, reportID, err)
	}

	plan, ok := a.plans[reportID]
	if !ok {
		if seed == nil {
			return []domain.ReportBooking{}, nil
		}
		return seed, nil
	}
	return expand(seed, plan), nil
}

func expand(seed []domain.ReportBooking, plan ExpansionPlan) []domain.ReportBooking {
	if len(seed) == 0 || plan.Count <= 0 {
		return []domain.ReportBooking{}
	}
	step := plan.Step
	if step <= 0 {
		step = 1
	}

	out := make([]domain.ReportBooking, 0, plan.Count)
	for i := 0; i < plan.Count; i++ {
		b := seed[i%len(seed)]
		n := i + 1
		b.GuestName = fmt.Sprintf("%s %d", b.GuestName, n)
		b.Additional = fmt.Sprintf("%s - Booking #%d", b.Additional, n)
		b.DateIn = plan.Start.AddDate(0, 0, i/step)
		b.DateOut = b.DateIn.Add(plan.Stay)
		out = append(out, b)
	}
	return out
}
