package events

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/bimmerhuolto/backend/engine/domain"
)

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher
	// Must not panic.
	p.VehicleResolved(context.Background(), &domain.VehicleRecord{RegistrationNumber: "ABC123"})
	p.ChatMessage(context.Background(), "sid", "hei", "moi")
	p.Close()
}

func TestHeaderCarrier(t *testing.T) {
	c := &natsHeaderCarrier{}
	if got := c.Get("traceparent"); got != "" {
		t.Fatalf("empty carrier get: %q", got)
	}
	c.Set("traceparent", "00-abc-def-01")
	if got := c.Get("traceparent"); got != "00-abc-def-01" {
		t.Fatalf("get after set: %q", got)
	}
	if keys := c.Keys(); len(keys) != 1 || keys[0] != "Traceparent" {
		t.Fatalf("keys: %v", keys)
	}
}

func TestHeaderCarrierOverMsg(t *testing.T) {
	msg := &nats.Msg{Subject: SubjectChatMessage, Header: nats.Header{}}
	msg.Header.Set("X-Test", "1")
	c := (*natsHeaderCarrier)(msg)
	if got := c.Get("X-Test"); got != "1" {
		t.Fatalf("got %q", got)
	}
}
