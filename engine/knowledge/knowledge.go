// Package knowledge holds the BMW maintenance reference data and the lookup
// logic that turns a make/model/year into a ManufacturerProfile. Lookup
// never fails: an unknown model or year produces a generic profile instead.
package knowledge

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bimmerhuolto/backend/engine/domain"
	"github.com/bimmerhuolto/backend/pkg/cache"
)

// KV is the slice of the cache store the knowledge base needs.
type KV interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) bool
}

// Base answers manufacturer profile lookups from an immutable dataset,
// memoizing results in the cache for ProfileTTL.
type Base struct {
	data   Dataset
	kv     KV
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Base over the given dataset. The dataset is injected so
// tests can run against fixtures; production wiring passes DefaultBMW().
func New(data Dataset, kv KV, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{data: data, kv: kv, logger: logger, now: time.Now}
}

// NormalizeModel lowercases a model name and strips whitespace, producing
// the dataset key. "3 Series" and "3series" address the same records.
func NormalizeModel(model string) string {
	return strings.ToLower(strings.Join(strings.Fields(model), ""))
}

// Lookup returns the profile for a make/model/year. A cached profile wins;
// otherwise the record whose year range contains year is used, and when no
// range matches (unknown model, unknown year, year 0) a generic profile is
// synthesized. The result is cached either way.
func (b *Base) Lookup(ctx context.Context, make, model string, year int) *domain.ManufacturerProfile {
	key := cache.ProfileKey(make, model, year)
	if b.kv != nil {
		var cached domain.ManufacturerProfile
		if b.kv.GetJSON(ctx, key, &cached) {
			return &cached
		}
	}

	currentYear := b.now().Year()
	var profile *domain.ManufacturerProfile

	if rec := b.match(model, year); rec != nil {
		profile = rec.profile(year, currentYear)
		b.logger.Debug("knowledge base match",
			"model", model, "year", year, "generation", rec.GenerationCode)
	} else {
		profile = genericProfile(year, currentYear)
		b.logger.Debug("knowledge base generic fallback", "model", model, "year", year)
	}

	if b.kv != nil {
		b.kv.SetJSON(ctx, key, profile, cache.ProfileTTL)
	}
	return profile
}

// match finds the dataset record whose inclusive year range contains year.
func (b *Base) match(model string, year int) *ModelRecord {
	records, ok := b.data[NormalizeModel(model)]
	if !ok || year == 0 {
		return nil
	}
	for i := range records {
		if year >= records[i].YearStart && year <= records[i].YearEnd {
			return &records[i]
		}
	}
	return nil
}
