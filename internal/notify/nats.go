package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"matatumonitor/internal/logging"
	"matatumonitor/internal/models"
	"matatumonitor/internal/session"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "matatu"

type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

// NATSPublisher publishes events as JSON to "<prefix>.<event type>", for
// example "matatu.report.validated".
type NATSPublisher struct {
	nc     natsConn
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "nats_publisher"))

	nc, err := nats.Connect(url,
		nats.Name("matatu-monitor"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logging.LogError(logger, "nats disconnected", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logging.LogOperation(logger, "nats_reconnected", slog.String("url", c.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logging.LogOperation(logger, "nats_closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}
	return newNATSPublisher(nc, prefix, logger), nil
}

func newNATSPublisher(nc natsConn, prefix string, logger *slog.Logger) *NATSPublisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{nc: nc, prefix: prefix, logger: logger}
}

// Subject returns the subject events of type t are published on.
func (p *NATSPublisher) Subject(t session.EventType) string {
	return p.prefix + "." + string(t)
}

// Notify implements session.Notifier. Publish failures are logged; the
// session never sees them.
func (p *NATSPublisher) Notify(ctx context.Context, event session.Event) {
	if err := p.Publish(event); err != nil {
		logging.LogError(p.logger, "failed to publish event", err,
			slog.String("event", string(event.Type)),
			slog.String("report_id", event.Report.ID))
	}
}

// Publish encodes event and publishes it.
func (p *NATSPublisher) Publish(event session.Event) error {
	data, err := json.Marshal(models.NewEventEntry(event))
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	subject := p.Subject(event.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.nc == nil {
		return nil
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return fmt.Errorf("draining nats connection: %w", err)
	}
	return nil
}
