// Package events publishes notifications about generated documents.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// DocumentGenerated is emitted after a generated document is committed.
type DocumentGenerated struct {
	DocumentID  string    `json:"document_id"`
	TemplateID  string    `json:"template_id,omitempty"`
	Strategy    string    `json:"strategy"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	ViewURL     string    `json:"view_url"`
	Keyword     string    `json:"keyword,omitempty"`
	Location    string    `json:"location,omitempty"`
	GeneratedBy string    `json:"generated_by"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Publisher delivers DocumentGenerated events.
type Publisher interface {
	PublishGenerated(ctx context.Context, ev DocumentGenerated) error
	Close()
}

// Noop discards every event.
type Noop struct{}

func (Noop) PublishGenerated(context.Context, DocumentGenerated) error { return nil }
func (Noop) Close()                                                    {}

const flushTimeout = 5 * time.Second

// NATSPublisher publishes events as JSON on a core NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	log     *zap.Logger
}

// NewNATSPublisher connects to url. Reconnects are handled by the client.
func NewNATSPublisher(url, subject string, log *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("pagegen"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	log.Info("nats publisher ready", zap.String("url", url), zap.String("subject", subject))
	return &NATSPublisher{conn: conn, subject: subject, log: log}, nil
}

// PublishGenerated publishes ev and waits for the server to acknowledge the
// flush or for ctx to end.
func (p *NATSPublisher) PublishGenerated(ctx context.Context, ev DocumentGenerated) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}
	p.log.Debug("published document event",
		zap.String("subject", p.subject),
		zap.String("document_id", ev.DocumentID))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn("nats drain", zap.Error(err))
	}
}

// New returns a NATSPublisher when url is set and Noop otherwise.
func New(url, subject string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return Noop{}, nil
	}
	return NewNATSPublisher(url, subject, log)
}
