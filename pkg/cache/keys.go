package cache

import (
	"fmt"
	"strings"
	"time"
)

// Retention windows for the three cached entity kinds.
const (
	VehicleTTL = 30 * 24 * time.Hour
	ProfileTTL = 24 * time.Hour
	SessionTTL = time.Hour
)

// Key namespaces. Every serialized entity lives under exactly one of these.
const (
	PopularModelsKey = "popular:models"
	RecentLookupsKey = "recent:lookups"
)

// VehicleKey keys a resolved vehicle by its normalized plate.
func VehicleKey(plate string) string { return "vehicle:" + plate }

// ProfileKey keys a manufacturer profile by make, model, and year.
func ProfileKey(make, model string, year int) string {
	return fmt.Sprintf("profile:%s:%s:%d",
		strings.ToLower(make), strings.ToLower(strings.ReplaceAll(model, " ", "")), year)
}

// SessionKey keys a chat session by its opaque id.
func SessionKey(id string) string { return "session:" + id }

// LookupCountKey keys the per-plate lookup counter.
func LookupCountKey(plate string) string { return "lookups:" + plate }
