package greenops

import (
	"math"
	"strings"
)

// getUnitFactor returns the conversion factor to kilograms for a carbon unit.
// Matching is case-insensitive.
func getUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e":
		return KgToKg, true
	case "t", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// getAreaFactor returns the conversion factor to square metres for an area unit.
func getAreaFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "m2", "m²", "sqm":
		return M2ToM2, true
	case "ha":
		return HectaresToM2, true
	case "km2", "km²":
		return Km2ToM2, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon quantity to kilograms.
//
// Returns ErrCalculationOverflow for NaN or infinite input or an overflowing
// product, ErrNegativeValue for negative values and ErrInvalidUnit for an
// unrecognised unit.
func NormalizeToKg(value float64, unit string) (float64, error) {
	return normalize(value, unit, getUnitFactor)
}

// NormalizeToM2 converts an area to square metres with the same error rules
// as NormalizeToKg.
func NormalizeToM2(value float64, unit string) (float64, error) {
	return normalize(value, unit, getAreaFactor)
}

func normalize(value float64, unit string, factorOf func(string) (float64, bool)) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := factorOf(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}
