package knowledge

import (
	"fmt"
	"math"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// Depreciation is linear at 8% per year of age, floored at 30% of the base
// valuation so even old cars keep a residual value.
const (
	depreciationPerYear = 0.08
	depreciationFloor   = 0.3
)

// DepreciationFactor returns the multiplier applied to a base valuation for
// a vehicle of the given age in years.
func DepreciationFactor(age int) float64 {
	if age < 0 {
		age = 0
	}
	f := 1 - float64(age)*depreciationPerYear
	if f < depreciationFloor {
		return depreciationFloor
	}
	return f
}

// depreciate scales the four condition tiers by the factor for the car's
// age and formats the poor..excellent span for display.
func depreciate(base domain.Valuation, vehicleYear, currentYear int) (domain.Valuation, string) {
	factor := DepreciationFactor(currentYear - vehicleYear)
	v := domain.Valuation{
		Excellent: int(math.Round(float64(base.Excellent) * factor)),
		Good:      int(math.Round(float64(base.Good) * factor)),
		Fair:      int(math.Round(float64(base.Fair) * factor)),
		Poor:      int(math.Round(float64(base.Poor) * factor)),
	}
	return v, fmt.Sprintf("%d–%d €", v.Poor, v.Excellent)
}
