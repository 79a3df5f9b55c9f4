package email

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/hotelreports/config"
	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/Domenick1991/hotelreports/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func exportEvent() kafka.ReportExportEvent {
	return kafka.ReportExportEvent{ID: "evt-1", ReportID: "1", Email: "ops@example.com", SortBy: "date_in", SortOrder: "asc"}
}

func TestSender_SendReportExport(t *testing.T) {
	dialer := &recordingDialer{}
	sender := NewSenderWithDialer("reports@example.com", dialer)
	report := &domain.Report{ID: "1", Name: "kelvin", HotelName: "Grand Hotel Jakarta"}

	err := sender.SendReportExport(context.Background(), exportEvent(), report, []byte("xlsx"))

	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	m := dialer.sent[0]
	assert.Equal(t, []string{"reports@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ops@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Booking report 1 - Grand Hotel Jakarta"}, m.GetHeader("Subject"))
}

func TestSender_SendReportExport_DialError(t *testing.T) {
	dialer := &recordingDialer{err: errors.New("connection refused")}
	sender := NewSenderWithDialer("reports@example.com", dialer)

	err := sender.SendReportExport(context.Background(), exportEvent(), nil, nil)

	assert.Error(t, err)
}

func TestSender_Disabled(t *testing.T) {
	sender := NewSender(config.SMTPConfig{Enabled: false, From: "reports@example.com"})

	assert.NoError(t, sender.SendReportExport(context.Background(), exportEvent(), nil, nil))
}

func TestSender_CancelledContext(t *testing.T) {
	dialer := &recordingDialer{}
	sender := NewSenderWithDialer("reports@example.com", dialer)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.SendReportExport(ctx, exportEvent(), nil, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dialer.sent)
}
