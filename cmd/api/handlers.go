package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bimmerhuolto/backend/engine/chat"
	"github.com/bimmerhuolto/backend/engine/domain"
	"github.com/bimmerhuolto/backend/pkg/cache"
)

// chatResponder is the slice of chat.Responder the handlers need.
type chatResponder interface {
	Respond(ctx context.Context, message, sessionID string) (*chat.Reply, error)
	Session(ctx context.Context, id string) (*domain.ChatSession, error)
}

// vehicleResolver is the slice of resolve.Resolver the handlers need.
type vehicleResolver interface {
	Resolve(ctx context.Context, reg string) (*domain.VehicleRecord, error)
}

// statsStore covers the read-only cache calls behind /api/health and
// /api/stats/popular.
type statsStore interface {
	Health(ctx context.Context) (time.Duration, error)
	SortedSetTop(ctx context.Context, key string, n int64) []cache.Scored
	ListRange(ctx context.Context, key string, start, stop int64) []string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ChatRequest is the JSON body for POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the JSON response for POST /api/chat.
type ChatResponse struct {
	SessionID string                `json:"session_id"`
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
	Vehicle   *domain.VehicleRecord `json:"vehicle,omitempty"`
}

func handleChat(responder chatResponder, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		reply, err := responder.Respond(r.Context(), req.Message, req.SessionID)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": verr.Error(),
					"field": verr.Field,
				})
				return
			}
			logger.Error("chat respond failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, ChatResponse{
			SessionID: reply.SessionID,
			Message:   reply.Message,
			Timestamp: reply.Timestamp,
			Vehicle:   reply.Vehicle,
		})
	}
}

func handleSession(responder chatResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := responder.Session(r.Context(), r.PathValue("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func handleVehicle(resolver vehicleResolver, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := resolver.Resolve(r.Context(), r.PathValue("reg"))
		if err != nil {
			var verr *domain.ValidationError
			switch {
			case errors.As(err, &verr):
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": verr.Error(),
					"field": verr.Field,
				})
			case errors.Is(err, domain.ErrNotFound):
				writeError(w, http.StatusNotFound, "vehicle not found")
			default:
				logger.Error("vehicle resolve failed", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleHealth(store statsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latency, err := store.Health(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "degraded",
				"cache":  "unreachable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "ok",
			"cache_latency_ms": latency.Milliseconds(),
		})
	}
}

// PopularModel is one entry in the /api/stats/popular response.
type PopularModel struct {
	Model   string `json:"model"`
	Lookups int64  `json:"lookups"`
}

func handlePopular(store statsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		top := store.SortedSetTop(r.Context(), cache.PopularModelsKey, 10)
		models := make([]PopularModel, 0, len(top))
		for _, s := range top {
			models = append(models, PopularModel{Model: s.Member, Lookups: int64(s.Score)})
		}
		recent := store.ListRange(r.Context(), cache.RecentLookupsKey, 0, 9)
		if recent == nil {
			recent = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"models": models,
			"recent": recent,
		})
	}
}
