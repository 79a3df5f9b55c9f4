package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// ReportExportEvent asks the worker to mail a sorted export of one report.
type ReportExportEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ReportID    string    `json:"report_id"`
	Email       string    `json:"email"`
	SortBy      string    `json:"sort_by"`
	SortOrder   string    `json:"sort_order"`
	RequestedAt time.Time `json:"requested_at"`
}

const EventReportExportRequested = "report_export_requested"

const (
	defaultAttempts = 3
	baseRetryDelay  = time.Second
	maxRetryDelay   = 30 * time.Second
)

type Producer struct {
	brokers  []string
	writer   *kafka.Writer
	attempts int
}

type ProducerOption func(*Producer)

// WithAttempts sets how many times a write is tried before Publish gives up.
func WithAttempts(n int) ProducerOption {
	return func(p *Producer) {
		if n > 0 {
			p.attempts = n
		}
	}
}

func NewProducer(brokers []string, opts ...ProducerOption) *Producer {
	p := &Producer{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish writes payload as JSON under key. Messages with the same key land on
// the same partition. Failed writes are retried with exponential backoff.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   data,
		Headers: []kafka.Header{{Key: "content-type", Value: []byte("application/json")}},
		Time:    time.Now(),
	}

	var lastErr error
	for attempt := 0; attempt < p.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay(attempt - 1)):
			}
		}

		lastErr = p.writer.WriteMessages(ctx, msg)
		if lastErr == nil {
			logrus.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("published to kafka")
			return nil
		}
		logrus.WithError(lastErr).WithFields(logrus.Fields{
			"topic":   topic,
			"attempt": attempt + 1,
		}).Warn("kafka write failed")
	}

	return fmt.Errorf("write to kafka after %d attempts: %w", p.attempts, lastErr)
}

// retryDelay doubles from one second and caps at thirty.
func retryDelay(retry int) time.Duration {
	if retry >= 5 {
		return maxRetryDelay
	}
	return min(baseRetryDelay<<retry, maxRetryDelay)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads its partition list.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	logrus.WithField("partitions", len(partitions)).Info("connected to kafka")
	return nil
}
