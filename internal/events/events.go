// Package events publishes audit events for control actions. Publishing is
// best effort: a failure is logged by the caller and never changes what the
// user sees.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/energyops/assetbot/internal/logging"
	"github.com/energyops/assetbot/internal/remote"
)

// ModeChanged records a successful operation mode change.
type ModeChanged struct {
	InteractionID string               `json:"interaction_id"`
	DeviceID      string               `json:"device_id"`
	Mode          remote.OperationMode `json:"mode"`
	ChatID        int64                `json:"chat_id"`
	At            time.Time            `json:"at"`
}

// Publisher sends audit events.
type Publisher interface {
	PublishModeChanged(ctx context.Context, ev ModeChanged) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishModeChanged(context.Context, ModeChanged) error { return nil }
func (Nop) Close() error                                          { return nil }

// conn is the subset of *nats.Conn used here.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// NATSPublisher publishes events as JSON on a single subject.
type NATSPublisher struct {
	conn    conn
	subject string
}

// Options configures the NATS connection.
type Options struct {
	URL     string
	Subject string
	Name    string        // Client name shown in server monitoring
	Timeout time.Duration // Connect timeout
}

// NewNATSPublisher connects to the broker at opts.URL.
func NewNATSPublisher(opts Options) (*NATSPublisher, error) {
	if opts.Subject == "" {
		return nil, fmt.Errorf("events: subject is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = nats.DefaultTimeout
	}

	nc, err := nats.Connect(opts.URL,
		nats.Name(opts.Name),
		nats.Timeout(opts.Timeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logging.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logging.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logging.Info("Connected to NATS server",
		zap.String("url", opts.URL),
		zap.String("subject", opts.Subject),
	)

	return newPublisher(nc, opts.Subject), nil
}

func newPublisher(c conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: c, subject: subject}
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// PublishModeChanged publishes ev. The NATS client buffers writes, so this
// does not wait for the broker; ctx is only checked before publishing.
func (p *NATSPublisher) PublishModeChanged(ctx context.Context, ev ModeChanged) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}

// Close closes the broker connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
		logging.Info("NATS connection closed")
	}
	return nil
}
