package email

import (
	"context"
	"fmt"
	"io"

	"github.com/Domenick1991/hotelreports/config"
	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/export"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender mails report exports. Without a dialer it only logs the delivery.
type Sender struct {
	from   string
	dialer Dialer
}

func NewSender(cfg config.SMTPConfig) *Sender {
	if !cfg.Enabled {
		return &Sender{from: cfg.From}
	}
	return NewSenderWithDialer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func NewSenderWithDialer(from string, dialer Dialer) *Sender {
	return &Sender{from: from, dialer: dialer}
}

func (s *Sender) SendReportExport(ctx context.Context, event kafka.ReportExportEvent, report *domain.Report, attachment []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := logrus.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"report_id": event.ReportID,
		"to":        event.Email,
		"bytes":     len(attachment),
	})
	if s.dialer == nil {
		entry.Info("smtp disabled, report export not mailed")
		return nil
	}

	m := s.buildMessage(event, report, attachment)
	if err := s.dialer.DialAndSend(m); err != nil {
		entry.WithError(err).Error("failed to send report export")
		return fmt.Errorf("failed to send email: %w", err)
	}
	entry.Info("report export mailed")
	return nil
}

func (s *Sender) buildMessage(event kafka.ReportExportEvent, report *domain.Report, attachment []byte) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.Email)

	subject := fmt.Sprintf("Booking report %s", event.ReportID)
	body := fmt.Sprintf("Bookings of report %s sorted by %s (%s).\n", event.ReportID, event.SortBy, event.SortOrder)
	if report != nil {
		subject = fmt.Sprintf("Booking report %s - %s", report.ID, report.HotelName)
		body = fmt.Sprintf("Bookings of %s (%s) at %s sorted by %s (%s).\nConfirmed: %d, cancelled: %d.\n",
			report.Name, report.Company, report.HotelName, event.SortBy, event.SortOrder,
			report.ConfirmedBookings, report.CancelledBookings)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	m.Attach(export.FileName(event.ReportID),
		gomail.SetHeader(map[string][]string{"Content-Type": {xlsxContentType}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}),
	)
	return m
}
