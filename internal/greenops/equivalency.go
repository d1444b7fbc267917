package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate converts a CarbonInput to kilograms and expresses it as economy
// round-trip flights from Europe to Asia and to Australia.
//
// If normalization fails, Calculate returns an empty output and the
// normalization error. Values below MinEquivalencyThresholdKg produce an
// empty output with Input set and no error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{Input: kg, IsEmpty: true}, nil
	}

	asia := kg / RoundTripFlightEuropeAsiaKg
	australia := kg / RoundTripFlightEuropeAustraliaKg
	if !finite(asia) || !finite(australia) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	asiaFormatted := formatEquivalencyValue(asia)
	australiaFormatted := formatEquivalencyValue(australia)

	return EquivalencyOutput{
		Input: kg,
		Results: []EquivalencyResult{
			{
				Type:           EquivalencyFlightsEuropeAsia,
				Value:          asia,
				FormattedValue: asiaFormatted,
				Label:          "round-trip flights Europe-Asia",
			},
			{
				Type:           EquivalencyFlightsEuropeAustralia,
				Value:          australia,
				FormattedValue: australiaFormatted,
				Label:          "round-trip flights Europe-Australia",
			},
		},
		DisplayText: fmt.Sprintf("Equivalent to ~%s round-trip economy flights from Europe to Asia or ~%s from Europe to Australia",
			asiaFormatted, australiaFormatted),
		CompactText: fmt.Sprintf("(≈ %s EU-AS flights, %s EU-AU flights)", asiaFormatted, australiaFormatted),
	}, nil
}

// CalculateLand converts a LandInput to square metres and expresses it as
// football fields and square kilometres.
//
// Error and threshold handling mirror Calculate, using
// MinEquivalencyThresholdM2.
func CalculateLand(input LandInput) (EquivalencyOutput, error) {
	m2, err := NormalizeToM2(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if m2 < MinEquivalencyThresholdM2 {
		return EquivalencyOutput{Input: m2, IsEmpty: true}, nil
	}

	fields := m2 / FootballFieldM2
	km2 := m2 / Km2ToM2
	if !finite(fields) || !finite(km2) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	fieldsFormatted := formatEquivalencyValue(fields)
	km2Formatted := FormatFloat(km2, 1)

	return EquivalencyOutput{
		Input: m2,
		Results: []EquivalencyResult{
			{
				Type:           EquivalencyFootballFields,
				Value:          fields,
				FormattedValue: fieldsFormatted,
				Label:          "football fields",
			},
			{
				Type:           EquivalencySquareKilometres,
				Value:          km2,
				FormattedValue: km2Formatted,
				Label:          "km²",
			},
		},
		DisplayText: fmt.Sprintf("Equivalent to ~%s football fields (%s km²)", fieldsFormatted, km2Formatted),
		CompactText: fmt.Sprintf("(≈ %s fields, %s km²)", fieldsFormatted, km2Formatted),
	}, nil
}

// Summarize calculates carbon and land equivalencies for a footprint in
// kg CO2e and m². A failing calculation is logged and yields an empty
// output for that half instead of an error.
func Summarize(co2Kg, landM2 float64) Summary {
	carbon, err := Calculate(CarbonInput{Value: co2Kg, Unit: "kg"})
	if err != nil {
		log.Warn().Err(err).Float64("co2e_kg", co2Kg).Msg("carbon equivalency calculation failed")
		carbon = EquivalencyOutput{IsEmpty: true}
	}

	land, err := CalculateLand(LandInput{Value: landM2, Unit: "m2"})
	if err != nil {
		log.Warn().Err(err).Float64("land_m2", landM2).Msg("land equivalency calculation failed")
		land = EquivalencyOutput{IsEmpty: true}
	}

	return Summary{Carbon: carbon, Land: land}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
