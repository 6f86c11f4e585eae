// Package domain defines the core types shared by the vehicle lookup and
// chat pipelines, plus registration plate normalization and validation.
package domain

import "time"

// DataSource identifies which path produced a VehicleRecord.
type DataSource string

const (
	SourceRegistry DataSource = "registry"
	SourceFallback DataSource = "fallback-api"
	SourceCache    DataSource = "cache"
)

// Confidence assigned per resolution path. A record gains ProfileBonus when
// a manufacturer profile is attached, capped at 1.0.
const (
	ConfidenceRegistry = 0.9
	ConfidenceFallback = 0.95
	ProfileBonus       = 0.1
)

// VehicleFields is the raw data a lookup source returns before the resolver
// tags and enriches it. A source that cannot fill Make and Model has failed.
type VehicleFields struct {
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	Color          string `json:"color,omitempty"`
	EngineSize     string `json:"engine_size,omitempty"`
	FuelType       string `json:"fuel_type,omitempty"`
	Power          string `json:"power,omitempty"`
	CO2Emissions   string `json:"co2_emissions,omitempty"`
	EmissionClass  string `json:"emission_class,omitempty"`
	VehicleClass   string `json:"vehicle_class,omitempty"`
	Mass           string `json:"mass,omitempty"`
	Seats          int    `json:"seats,omitempty"`
	NextInspection string `json:"next_inspection,omitempty"`
	TaxClass       string `json:"tax_class,omitempty"`
}

// Complete reports whether the fields are usable as a lookup result.
func (f *VehicleFields) Complete() bool {
	return f != nil && f.Make != "" && f.Model != ""
}

// VehicleRecord is one resolved vehicle as stored in the cache and returned
// to API callers.
type VehicleRecord struct {
	RegistrationNumber string `json:"registration_number"`
	VehicleFields
	Profile    *ManufacturerProfile `json:"manufacturer_profile,omitempty"`
	DataSource DataSource           `json:"data_source"`
	ResolvedAt time.Time            `json:"resolved_at"`
	Confidence float64              `json:"confidence"`
}

// PartsPriceTier buckets expected spare-part prices for a model range.
type PartsPriceTier string

const (
	TierLow     PartsPriceTier = "Low"
	TierMedium  PartsPriceTier = "Medium"
	TierHigh    PartsPriceTier = "High"
	TierPremium PartsPriceTier = "Premium"
)

// Valuation holds the four condition-tier estimates in euros. Zero when the
// profile is generic and only the display placeholder is available.
type Valuation struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

// ManufacturerProfile carries model-range maintenance intelligence. It is
// built on demand from the reference dataset (or a generic fallback rule)
// and never mutated afterwards; a re-resolution overwrites the cache entry.
type ManufacturerProfile struct {
	EngineCode      string         `json:"engine_code"`
	GenerationCode  string         `json:"generation_code"`
	ChassisCode     string         `json:"chassis_code"`
	OilSpec         string         `json:"oil_spec"`
	OilCapacity     string         `json:"oil_capacity"`
	ServiceInterval string         `json:"service_interval"`
	CommonIssues    []string       `json:"common_issues"`
	Valuation       Valuation      `json:"valuation,omitempty"`
	EstimatedValue  string         `json:"estimated_value"`
	PartsPriceTier  PartsPriceTier `json:"parts_price_tier"`
}

// Role of a chat message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a chat session.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is one conversation, cached under its opaque id and expired
// after the idle window. Never deleted explicitly.
type ChatSession struct {
	ID        string         `json:"id"`
	Messages  []Message      `json:"messages"`
	Vehicle   *VehicleRecord `json:"vehicle,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Append adds a message and bumps UpdatedAt.
func (s *ChatSession) Append(role Role, content string, at time.Time) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content, Timestamp: at})
	s.UpdatedAt = at
}
