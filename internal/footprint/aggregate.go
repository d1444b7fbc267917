package footprint

import (
	"fmt"
	"math"
)

// ComputePerTonne computes the footprint of one tonne of farmed output.
//
// totalFeedMassKg is the mass of feed needed for that tonne. Each blend
// component is resolved with Resolve and contributes
//
//	factor * fraction * totalFeedMassKg
//
// to the CO2e and land totals. Contributions keep blend order.
//
// Keys that resolve to no ingredient are skipped and reported as
// WarningUnresolvedBlendKey; keys matching several ingredients use the first
// match and are reported as WarningAmbiguousBlendKey. Neither aborts the
// computation.
//
// Returns ErrEmptyIngredientTable if ingredients is empty,
// ErrDuplicateBlendKey if a key is listed twice, and ErrInvalidScalar if
// totalFeedMassKg is not a positive finite number, a fraction lies outside
// [0,1], a resolved ingredient has a negative or non-finite factor, or a
// total overflows.
//
// Fractions are not normalised: a blend summing to less than one yields a
// footprint for the declared portion only. See CheckBlendSum.
func ComputePerTonne(ingredients Table, blend Blend, totalFeedMassKg float64) (Result, error) {
	if len(ingredients) == 0 {
		return Result{}, ErrEmptyIngredientTable
	}
	if err := requirePositive("total feed mass", totalFeedMassKg); err != nil {
		return Result{}, err
	}

	if err := blend.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Contributions: make([]Contribution, 0, len(blend))}
	for _, comp := range blend {
		ing, candidates, ok := Resolve(ingredients, comp.Key)
		if !ok {
			res.Warnings = append(res.Warnings, newWarning(WarningUnresolvedBlendKey, comp.Key,
				fmt.Errorf("%w: %q matches no ingredient", ErrUnresolvedBlendKey, comp.Key)))
			continue
		}
		if candidates > 1 {
			res.Warnings = append(res.Warnings, newWarning(WarningAmbiguousBlendKey, comp.Key,
				fmt.Errorf("%w: %q matches %d ingredients, using %q",
					ErrAmbiguousBlendKey, comp.Key, candidates, ing.Name)))
		}
		if err := checkFactors(ing); err != nil {
			return Result{}, err
		}

		c := Contribution{
			Key:        comp.Key,
			Ingredient: ing.Name,
			Fraction:   comp.Fraction,
			CO2Kg:      ing.CO2PerKg * comp.Fraction * totalFeedMassKg,
			LandM2:     ing.LandPerKg * comp.Fraction * totalFeedMassKg,
			Candidates: candidates,
		}
		res.Contributions = append(res.Contributions, c)
		res.Totals.CO2Kg += c.CO2Kg
		res.Totals.LandM2 += c.LandM2
	}

	if !isFinite(res.Totals.CO2Kg) || !isFinite(res.Totals.LandM2) {
		return Result{}, fmt.Errorf("%w: totals overflow for feed mass %v", ErrInvalidScalar, totalFeedMassKg)
	}
	return res, nil
}

// checkFactors rejects per-kg factors that are negative or not finite.
func checkFactors(ing Ingredient) error {
	if !isFinite(ing.CO2PerKg) || ing.CO2PerKg < 0 {
		return fmt.Errorf("%w: %s: co2e per kg must be a non-negative number, got %v",
			ErrInvalidScalar, ing.Name, ing.CO2PerKg)
	}
	if !isFinite(ing.LandPerKg) || ing.LandPerKg < 0 {
		return fmt.Errorf("%w: %s: land per kg must be a non-negative number, got %v",
			ErrInvalidScalar, ing.Name, ing.LandPerKg)
	}
	return nil
}

// ScaleToNationalImpact multiplies per-tonne totals by a national
// production volume in metric tonnes. No rounding is applied.
//
// Returns ErrInvalidScalar if productionTonnes is zero, negative, NaN or
// infinite, or if scaling overflows.
func ScaleToNationalImpact(totals Totals, productionTonnes float64) (NationalImpact, error) {
	if err := requirePositive("production tonnes", productionTonnes); err != nil {
		return NationalImpact{}, err
	}

	out := NationalImpact{
		Scenario:         totals.Scenario,
		ProductionTonnes: productionTonnes,
		CO2Kg:            totals.CO2Kg * productionTonnes,
		LandM2:           totals.LandM2 * productionTonnes,
	}
	if math.IsInf(out.CO2Kg, 0) || math.IsInf(out.LandM2, 0) {
		return NationalImpact{}, fmt.Errorf("%w: scaling by %v overflows", ErrInvalidScalar, productionTonnes)
	}
	return out, nil
}

// FeedMassForOutput returns the feed mass in kg needed to produce outputKg
// of fish at the given feed-conversion ratio.
func FeedMassForOutput(fcr, outputKg float64) (float64, error) {
	if err := requirePositive("feed conversion ratio", fcr); err != nil {
		return 0, err
	}
	if err := requirePositive("output mass", outputKg); err != nil {
		return 0, err
	}
	return fcr * outputKg, nil
}

// CheckBlendSum reports whether the blend fractions sum to one within
// tolerance. It never alters the blend; callers decide whether a deviation
// is worth surfacing.
func CheckBlendSum(blend Blend, tolerance float64) (float64, bool) {
	sum := blend.Sum()
	return sum, math.Abs(sum-1) <= tolerance
}

func requirePositive(field string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be a positive finite number, got %v", ErrInvalidScalar, field, v)
	}
	return nil
}
