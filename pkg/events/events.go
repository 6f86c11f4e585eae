// Package events publishes lookup and chat events to NATS for analytics.
// The publisher is optional: a nil *Publisher is a no-op, so the server
// runs fine without a broker. OpenTelemetry trace context is injected into
// message headers.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// Subjects for the published event streams.
const (
	SubjectVehicleResolved = "bimmerhuolto.vehicle.resolved"
	SubjectChatMessage     = "bimmerhuolto.chat.message"
)

// VehicleResolvedEvent is published after every non-cache resolution.
type VehicleResolvedEvent struct {
	Plate      string    `json:"plate"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// ChatMessageEvent is published for every handled chat message.
type ChatMessageEvent struct {
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	Reply       string    `json:"reply"`
	At          time.Time `json:"at"`
}

// natsHeaderCarrier adapts nats.Msg headers for the OTel TextMapCarrier.
type natsHeaderCarrier nats.Msg

func (c *natsHeaderCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *natsHeaderCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *natsHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Publisher wraps a NATS connection. Nil means events are disabled.
type Publisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// Connect dials the broker. The caller decides whether a failure is fatal;
// in practice main logs it and runs without events.
func Connect(url string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	nc, err := nats.Connect(url, nats.Name("bimmerhuolto-api"))
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, logger: logger}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Drain()
}

// VehicleResolved publishes a resolution event. Best effort.
func (p *Publisher) VehicleResolved(ctx context.Context, rec *domain.VehicleRecord) {
	if p == nil {
		return
	}
	publish(ctx, p, SubjectVehicleResolved, VehicleResolvedEvent{
		Plate:      rec.RegistrationNumber,
		Make:       rec.Make,
		Model:      rec.Model,
		Year:       rec.Year,
		Source:     string(rec.DataSource),
		Confidence: rec.Confidence,
		ResolvedAt: rec.ResolvedAt,
	})
}

// ChatMessage publishes a chat turn. Best effort.
func (p *Publisher) ChatMessage(ctx context.Context, sessionID, userMessage, reply string) {
	if p == nil {
		return
	}
	publish(ctx, p, SubjectChatMessage, ChatMessageEvent{
		SessionID:   sessionID,
		UserMessage: userMessage,
		Reply:       reply,
		At:          time.Now().UTC(),
	})
}

// publish serializes v as JSON with trace headers and fires it at the
// subject. Failures are logged, never propagated: analytics must not
// affect request handling.
func publish[T any](ctx context.Context, p *Publisher, subject string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("event not serializable", "subject", subject, "err", err)
		return
	}
	msg := &nats.Msg{Subject: subject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*natsHeaderCarrier)(msg))
	if err := p.nc.PublishMsg(msg); err != nil {
		p.logger.Warn("event publish failed", "subject", subject, "err", err)
	}
}
