// Package kafka publishes styled earthquake markers to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Header keys attached to every marker message.
const (
	HeaderDepthColor = "depth_color"
	HeaderRenderedAt = "rendered_at"
	HeaderBatchID    = "batch_id"
)

// Writer produces marker messages to the configured topic.
// It implements pipeline.MarkerPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaMarkerTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishMarkers writes one message per marker in a single WriteMessages
// call. Messages are keyed by event ID so repeated renders of the same
// event land on the same partition; a shared batch ID groups one render.
func (w *Writer) PublishMarkers(ctx context.Context, renderedAt time.Time, markers []domain.MarkerSpec) error {
	if len(markers) == 0 {
		return nil
	}
	batchID := uuid.NewString()
	msgs := make([]kafkago.Message, len(markers))
	for i := range markers {
		msg, err := serializeMarker(markers[i], renderedAt, batchID)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d markers: %w", len(msgs), err)
	}
	w.logger.Debug("markers published", "count", len(msgs), "topic", w.writer.Topic, "batch_id", batchID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeMarker(marker domain.MarkerSpec, renderedAt time.Time, batchID string) (kafkago.Message, error) {
	data, err := json.Marshal(marker)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker %s: %w", marker.EventID, err)
	}
	return kafkago.Message{
		Key:   []byte(marker.EventID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderDepthColor, Value: []byte(marker.Style.FillColor)},
			{Key: HeaderRenderedAt, Value: []byte(renderedAt.UTC().Format(time.RFC3339))},
			{Key: HeaderBatchID, Value: []byte(batchID)},
		},
	}, nil
}
