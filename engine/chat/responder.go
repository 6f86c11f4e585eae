// Package chat implements the rule-based chat widget: a plate scan first,
// then keyword categories in fixed priority order, each mapping to one
// canned Finnish reply. Conversation history lives in the cache keyed by an
// opaque session id and expires after an hour of idle time.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bimmerhuolto/backend/engine/domain"
	"github.com/bimmerhuolto/backend/pkg/cache"
)

// maxMessageLen is the input-length bound; anything longer is rejected at
// the boundary.
const maxMessageLen = 1000

// KV is the slice of the cache store the responder uses.
type KV interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) bool
}

// VehicleResolver resolves a plate found in a message.
type VehicleResolver interface {
	Resolve(ctx context.Context, reg string) (*domain.VehicleRecord, error)
}

// Publisher emits chat events. May be nil.
type Publisher interface {
	ChatMessage(ctx context.Context, sessionID, userMessage, reply string)
}

// Reply is the responder's answer to one message.
type Reply struct {
	SessionID string
	Message   string
	Timestamp time.Time
	Vehicle   *domain.VehicleRecord
}

// Responder is the stateless rule engine. All conversation state lives in
// the cache.
type Responder struct {
	kv       KV
	resolver VehicleResolver
	events   Publisher
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a Responder. resolver and events may be nil; without a
// resolver the plate rule degrades to the not-found reply.
func New(kv KV, resolver VehicleResolver, events Publisher, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		kv:       kv,
		resolver: resolver,
		events:   events,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Respond handles one incoming message. It always produces some reply;
// the only failures are the input-length validations.
func (r *Responder) Respond(ctx context.Context, message, sessionID string) (*Reply, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, domain.NewValidationError("message", "", domain.ErrEmptyMessage)
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return nil, domain.NewValidationError("message",
			fmt.Sprintf("%d chars", utf8.RuneCountInString(message)), domain.ErrMessageTooLong)
	}

	session := r.loadOrCreate(ctx, sessionID)
	nowTS := r.now().UTC()
	session.Append(domain.RoleUser, trimmed, nowTS)

	text, vehicle := r.buildReply(ctx, trimmed)
	session.Append(domain.RoleAssistant, text, nowTS)
	if vehicle != nil {
		session.Vehicle = vehicle
	}

	r.kv.SetJSON(ctx, cache.SessionKey(session.ID), session, cache.SessionTTL)
	if r.events != nil {
		r.events.ChatMessage(ctx, session.ID, trimmed, text)
	}

	return &Reply{
		SessionID: session.ID,
		Message:   text,
		Timestamp: nowTS,
		Vehicle:   vehicle,
	}, nil
}

// Session returns a stored conversation or domain.ErrNotFound.
func (r *Responder) Session(ctx context.Context, id string) (*domain.ChatSession, error) {
	if id == "" {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	var s domain.ChatSession
	if !r.kv.GetJSON(ctx, cache.SessionKey(id), &s) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return &s, nil
}

// loadOrCreate fetches the session by id, or starts a fresh one. A supplied
// id that has expired keeps its value so the widget's reference stays
// stable across the idle window.
func (r *Responder) loadOrCreate(ctx context.Context, id string) *domain.ChatSession {
	if id != "" {
		var s domain.ChatSession
		if r.kv.GetJSON(ctx, cache.SessionKey(id), &s) {
			return &s
		}
	}
	if id == "" {
		id = r.newID()
	}
	now := r.now().UTC()
	return &domain.ChatSession{ID: id, CreatedAt: now, UpdatedAt: now}
}

// buildReply applies the rules in order: plate scan first, then keyword
// categories, then the greeting. First match wins.
func (r *Responder) buildReply(ctx context.Context, message string) (string, *domain.VehicleRecord) {
	if plate := domain.FindPlate(message); plate != "" {
		if !domain.ValidPlate(plate) {
			return replyBadPlate, nil
		}
		return r.plateReply(ctx, plate)
	}
	return keywordReply(strings.ToLower(message)), nil
}

func (r *Responder) plateReply(ctx context.Context, plate string) (string, *domain.VehicleRecord) {
	if r.resolver == nil {
		return fmt.Sprintf(replyNotFound, plate), nil
	}
	rec, err := r.resolver.Resolve(ctx, plate)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("chat vehicle lookup failed", "plate", plate, "err", err)
		}
		return fmt.Sprintf(replyNotFound, plate), nil
	}
	if strings.Contains(strings.ToLower(rec.Make), "bmw") {
		return vehicleReply(rec), rec
	}
	return fmt.Sprintf(replyOtherMake, rec.Make, rec.Model), rec
}
