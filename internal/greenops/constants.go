package greenops

// Narrative equivalency factors used by the feed footprint dashboards.
//
// To calculate an equivalency, divide the footprint value by the factor:
//
//	equivalency = value / factor
const (
	// RoundTripFlightEuropeAsiaKg is kg CO2e per passenger for one economy
	// round trip between Europe and Asia.
	RoundTripFlightEuropeAsiaKg = 1000.0

	// RoundTripFlightEuropeAustraliaKg is kg CO2e per passenger for one
	// economy round trip between Europe and Australia.
	RoundTripFlightEuropeAustraliaKg = 2660.0

	// FootballFieldM2 is the area of one football field, rounded to 7,000 m².
	FootballFieldM2 = 7000.0
)

// Unit Conversion Constants for normalizing carbon values to kilograms.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// TonsToKg converts metric tons to kilograms.
	TonsToKg = 1000.0

	// PoundsToKg converts pounds to kilograms.
	PoundsToKg = 0.453592
)

// Unit Conversion Constants for normalizing areas to square metres.
const (
	// M2ToM2 is the identity conversion for square metres.
	M2ToM2 = 1.0

	// HectaresToM2 converts hectares to square metres.
	HectaresToM2 = 10_000.0

	// Km2ToM2 converts square kilometres to square metres.
	Km2ToM2 = 1_000_000.0
)

// Display Threshold Constants control when equivalencies are shown.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// MinEquivalencyThresholdM2 is the minimum m² for showing land equivalencies.
	MinEquivalencyThresholdM2 = 1.0

	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)
