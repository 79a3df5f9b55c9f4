package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/Domenick1991/hotelreports/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ReportUseCase interface {
	ListReports(ctx context.Context, filter domain.ReportFilter) (*domain.ReportList, error)
	GetReport(ctx context.Context, id string) (*domain.Report, error)
	GetReportBookings(ctx context.Context, id string) ([]domain.ReportBooking, error)
	GetReportBookingsPage(ctx context.Context, query domain.BookingsQuery) (*domain.BookingsPage, error)
	SortedReportBookings(ctx context.Context, id string, field domain.SortField, order domain.SortOrder) ([]domain.ReportBooking, error)
	RequestExport(ctx context.Context, input ExportInput) (*kafka.ReportExportEvent, error)
	CompanyOptions(ctx context.Context) ([]domain.Option, error)
	HotelOptions(ctx context.Context) ([]domain.Option, error)
}

type Cache interface {
	GetBookingsPage(ctx context.Context, key string) (*domain.BookingsPage, error)
	SetBookingsPage(ctx context.Context, key string, page *domain.BookingsPage) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ExportInput struct {
	ReportID  string `json:"report_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type ReportService struct {
	reports     repository.ReportRepository
	aggregator  *Aggregator
	cache       Cache
	producer    Producer
	exportTopic string
	plans       map[string]ExpansionPlan
	now         func() time.Time
}

type ReportServiceOption func(*ReportService)

// WithExpansionPlans enables synthetic expansion of seed bookings.
func WithExpansionPlans(plans map[string]ExpansionPlan) ReportServiceOption {
	return func(s *ReportService) {
		s.plans = plans
	}
}

func WithCache(cache Cache) ReportServiceOption {
	return func(s *ReportService) {
		s.cache = cache
	}
}

func WithExportProducer(producer Producer, topic string) ReportServiceOption {
	return func(s *ReportService) {
		s.producer = producer
		s.exportTopic = topic
	}
}

func NewReportService(reports repository.ReportRepository, opts ...ReportServiceOption) *ReportService {
	service := &ReportService{
		reports: reports,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.aggregator = NewAggregator(reports, service.plans)
	return service
}

func (s *ReportService) ListReports(ctx context.Context, filter domain.ReportFilter) (*domain.ReportList, error) {
	if filter.Page == 0 {
		filter.Page = domain.DefaultPage
	}
	if filter.PageSize == 0 {
		filter.PageSize = domain.DefaultPageSize
	}
	if filter.Page < 0 || filter.PageSize < 0 {
		return nil, fmt.Errorf("%w: page and page size must be positive", domain.ErrInvalidArgument)
	}

	all, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list reports: %w", domain.ErrUpstream, err)
	}

	matched := make([]domain.Report, 0, len(all))
	for _, r := range all {
		if filter.Company != "" && !strings.EqualFold(r.Company, filter.Company) {
			continue
		}
		if filter.Hotel != "" && !strings.EqualFold(r.HotelName, filter.Hotel) {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		matched = append(matched, r)
	}

	rows, pageCount := pageOf(matched, filter.Page, filter.PageSize)
	return &domain.ReportList{
		Reports:   rows,
		PageCount: pageCount,
		Total:     len(matched),
	}, nil
}

func (s *ReportService) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get report %s: %w", domain.ErrUpstream, id, err)
	}

	bookings, err := s.GetReportBookings(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Bookings = bookings
	return report, nil
}

func (s *ReportService) GetReportBookings(ctx context.Context, id string) ([]domain.ReportBooking, error) {
	bookings, err := s.reports.ListBookings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings of report %s: %w", domain.ErrUpstream, id, err)
	}
	if bookings == nil {
		bookings = []domain.ReportBooking{}
	}
	return bookings, nil
}

// GetReportBookingsPage runs aggregate, sort and paginate for one page.
// Unknown reports yield an empty page rather than an error.
func (s *ReportService) GetReportBookingsPage(ctx context.Context, query domain.BookingsQuery) (*domain.BookingsPage, error) {
	if err := validateStruct(query); err != nil {
		return nil, err
	}
	field, err := domain.ParseSortField(string(query.SortBy))
	if err != nil {
		return nil, err
	}
	query.SortBy = field

	key := query.CacheKey()
	if s.cache != nil {
		cached, err := s.cache.GetBookingsPage(ctx, key)
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("bookings page cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	candidates, err := s.aggregator.Collect(ctx, query.ReportID)
	if err != nil {
		return nil, err
	}
	sorted := SortBookings(candidates, query.SortBy, query.SortOrder)
	page := Paginate(sorted, query.Page, query.PageSize)

	if s.cache != nil {
		if err := s.cache.SetBookingsPage(ctx, key, &page); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("bookings page cache write failed")
		}
	}

	logrus.WithFields(logrus.Fields{
		"report_id": query.ReportID,
		"page":      query.Page,
		"page_size": query.PageSize,
		"sort_by":   query.SortBy,
		"order":     query.SortOrder,
		"total":     page.TotalCount,
	}).Debug("bookings page built")

	return &page, nil
}

func (s *ReportService) SortedReportBookings(ctx context.Context, id string, field domain.SortField, order domain.SortOrder) ([]domain.ReportBooking, error) {
	field, err := domain.ParseSortField(string(field))
	if err != nil {
		return nil, err
	}
	order, err = domain.ParseSortOrder(string(order))
	if err != nil {
		return nil, err
	}

	candidates, err := s.aggregator.Collect(ctx, id)
	if err != nil {
		return nil, err
	}
	return SortBookings(candidates, field, order), nil
}

func (s *ReportService) RequestExport(ctx context.Context, input ExportInput) (*kafka.ReportExportEvent, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	field, err := domain.ParseSortField(input.SortBy)
	if err != nil {
		return nil, err
	}
	order, err := domain.ParseSortOrder(input.SortOrder)
	if err != nil {
		return nil, err
	}
	if s.producer == nil || s.exportTopic == "" {
		return nil, domain.ErrExportUnavailable
	}

	if _, err := s.reports.GetByID(ctx, input.ReportID); err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get report %s: %w", domain.ErrUpstream, input.ReportID, err)
	}

	event := &kafka.ReportExportEvent{
		ID:          uuid.NewString(),
		Type:        kafka.EventReportExportRequested,
		ReportID:    input.ReportID,
		Email:       input.Email,
		SortBy:      string(field),
		SortOrder:   string(order),
		RequestedAt: s.now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.exportTopic, event.ReportID, event); err != nil {
		return nil, fmt.Errorf("publish export event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"report_id": event.ReportID,
	}).Info("report export requested")
	return event, nil
}

func (s *ReportService) CompanyOptions(ctx context.Context) ([]domain.Option, error) {
	options, err := s.reports.CompanyOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: company options: %w", domain.ErrUpstream, err)
	}
	return options, nil
}

func (s *ReportService) HotelOptions(ctx context.Context) ([]domain.Option, error) {
	options, err := s.reports.HotelOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: hotel options: %w", domain.ErrUpstream, err)
	}
	return options, nil
}

var _ ReportUseCase = (*ReportService)(nil)
