// Package resolve orchestrates a vehicle lookup: cache, then the free
// registry scrape, then the paid fallback API, in that fixed order. The
// two external sources are never tried in parallel so the paid call only
// happens after the free path has definitively failed.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bimmerhuolto/backend/engine/domain"
	"github.com/bimmerhuolto/backend/pkg/cache"
)

// Cache is the slice of the cache store the resolver uses. All operations
// degrade to safe defaults, so the resolver never checks them for errors.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) bool
	Increment(ctx context.Context, key string) int64
	SortedSetIncr(ctx context.Context, key, member string, delta float64) bool
	ListPush(ctx context.Context, key, val string, maxLen int64) bool
}

// Scraper is the registry scraping boundary. Any error means "try the
// fallback", never "fail the request".
type Scraper interface {
	Scrape(ctx context.Context, plate string) (*domain.VehicleFields, error)
}

// Fallback is the paid lookup boundary, one attempt per resolution.
type Fallback interface {
	Fetch(ctx context.Context, plate string) (*domain.VehicleFields, error)
}

// Knowledge attaches manufacturer maintenance data. Never fails.
type Knowledge interface {
	Lookup(ctx context.Context, make, model string, year int) *domain.ManufacturerProfile
}

// Publisher emits resolution events. May be nil.
type Publisher interface {
	VehicleResolved(ctx context.Context, rec *domain.VehicleRecord)
}

// recentLookupsMax bounds the recent-lookups feed in the cache.
const recentLookupsMax = 100

// Resolver resolves registration numbers to vehicle records.
type Resolver struct {
	cache    Cache
	scraper  Scraper
	fallback Fallback
	kb       Knowledge
	events   Publisher
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Resolver. kb and events may be nil.
func New(c Cache, s Scraper, f Fallback, kb Knowledge, events Publisher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cache: c, scraper: s, fallback: f, kb: kb, events: events, logger: logger, now: time.Now}
}

// Resolve looks up one registration number. It returns domain.ErrNotFound
// when neither source produced usable data; that is the only expected
// failure besides an empty input.
func (r *Resolver) Resolve(ctx context.Context, reg string) (*domain.VehicleRecord, error) {
	plate := domain.NormalizePlate(reg)
	if plate == "" {
		return nil, domain.NewValidationError("registration_number", reg, domain.ErrEmptyPlate)
	}
	// Advisory only: vanity and diplomatic plates fail this check yet
	// resolve fine, so a mismatch is logged and the lookup proceeds.
	if !domain.ValidPlate(plate) {
		r.logger.Warn("plate format unusual, proceeding anyway", "plate", plate)
	}

	var cached domain.VehicleRecord
	if r.cache.GetJSON(ctx, cache.VehicleKey(plate), &cached) {
		cached.DataSource = domain.SourceCache
		r.recordStats(ctx, plate, &cached)
		r.logger.Info("vehicle resolved", "plate", plate, "source", cached.DataSource)
		return &cached, nil
	}

	fields, source, confidence := r.lookup(ctx, plate)
	if fields == nil {
		return nil, fmt.Errorf("resolve %s: %w", plate, domain.ErrNotFound)
	}

	rec := &domain.VehicleRecord{
		RegistrationNumber: plate,
		VehicleFields:      *fields,
		DataSource:         source,
		ResolvedAt:         r.now().UTC(),
		Confidence:         confidence,
	}

	if r.kb != nil && strings.Contains(strings.ToLower(rec.Make), "bmw") {
		rec.Profile = r.kb.Lookup(ctx, rec.Make, rec.Model, rec.Year)
		rec.Confidence += domain.ProfileBonus
		if rec.Confidence > 1.0 {
			rec.Confidence = 1.0
		}
	}

	r.cache.SetJSON(ctx, cache.VehicleKey(plate), rec, cache.VehicleTTL)
	r.recordStats(ctx, plate, rec)
	if r.events != nil {
		r.events.VehicleResolved(ctx, rec)
	}

	r.logger.Info("vehicle resolved",
		"plate", plate, "source", source, "make", rec.Make, "model", rec.Model,
		"confidence", rec.Confidence)
	return rec, nil
}

// lookup runs the scrape-then-fallback sequence. A nil result means both
// paths failed.
func (r *Resolver) lookup(ctx context.Context, plate string) (*domain.VehicleFields, domain.DataSource, float64) {
	fields, err := r.scraper.Scrape(ctx, plate)
	if err == nil && fields.Complete() {
		return fields, domain.SourceRegistry, domain.ConfidenceRegistry
	}
	if err != nil {
		r.logger.Warn("registry scrape failed, trying fallback", "plate", plate, "err", err)
	} else {
		r.logger.Warn("registry scrape incomplete, trying fallback", "plate", plate)
	}

	fields, err = r.fallback.Fetch(ctx, plate)
	if err == nil && fields.Complete() {
		return fields, domain.SourceFallback, domain.ConfidenceFallback
	}
	switch {
	case errors.Is(err, domain.ErrNoCredential):
		r.logger.Info("fallback api skipped", "plate", plate, "reason", err)
	case err != nil:
		r.logger.Warn("fallback api failed", "plate", plate, "err", err)
	default:
		r.logger.Warn("fallback api returned incomplete data", "plate", plate)
	}
	return nil, "", 0
}

// recordStats feeds the lookup counters behind the popular-models endpoint.
// Best effort: the cache swallows its own failures.
func (r *Resolver) recordStats(ctx context.Context, plate string, rec *domain.VehicleRecord) {
	r.cache.Increment(ctx, cache.LookupCountKey(plate))
	if rec.Make != "" {
		member := strings.TrimSpace(rec.Make + " " + rec.Model)
		r.cache.SortedSetIncr(ctx, cache.PopularModelsKey, member, 1)
	}
	r.cache.ListPush(ctx, cache.RecentLookupsKey, plate, recentLookupsMax)
}
