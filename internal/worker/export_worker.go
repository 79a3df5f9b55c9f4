package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/export"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/Domenick1991/hotelreports/internal/service/reports"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Mailer interface {
	SendReportExport(ctx context.Context, event kafka.ReportExportEvent, report *domain.Report, attachment []byte) error
}

type MessageSource interface {
	Consume(ctx context.Context, handler func(context.Context, kafkaGo.Message) error) error
}

// ExportWorker turns export events into mailed XLSX workbooks.
type ExportWorker struct {
	service reports.ReportUseCase
	mailer  Mailer
}

func NewExportWorker(service reports.ReportUseCase, mailer Mailer) *ExportWorker {
	return &ExportWorker{
		service: service,
		mailer:  mailer,
	}
}

// Start consumes events until ctx is canceled. Failed events are logged and
// their offsets committed anyway, so delivery is at-most-once: an export that
// fails on a mail outage is dropped and has to be requested again.
func (w *ExportWorker) Start(ctx context.Context, source MessageSource) error {
	logrus.Info("report export worker started")
	err := source.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		if err := w.HandleMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logrus.WithError(err).WithField("offset", msg.Offset).Error("report export failed")
		}
		return nil
	})
	if ctx.Err() != nil {
		logrus.Info("report export worker stopped")
		return nil
	}
	return err
}

func (w *ExportWorker) HandleMessage(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.DecodeExportEvent(msg)
	if err != nil {
		return err
	}
	if event.Type != kafka.EventReportExportRequested {
		logrus.WithField("type", event.Type).Debug("skipping unknown event")
		return nil
	}
	return w.Export(ctx, event)
}

func (w *ExportWorker) Export(ctx context.Context, event kafka.ReportExportEvent) error {
	report, err := w.service.GetReport(ctx, event.ReportID)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			logrus.WithField("report_id", event.ReportID).Warn("export requested for missing report")
			return nil
		}
		return err
	}

	bookings, err := w.service.SortedReportBookings(ctx, event.ReportID, domain.SortField(event.SortBy), domain.SortOrder(event.SortOrder))
	if err != nil {
		return err
	}

	workbook, err := export.BuildWorkbook(report, bookings)
	if err != nil {
		return fmt.Errorf("build workbook for report %s: %w", event.ReportID, err)
	}

	return w.mailer.SendReportExport(ctx, event, report, workbook)
}
