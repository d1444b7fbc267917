package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, fracPart, _ := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	grouped := FormatNumber(n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		grouped = "-" + grouped
	}
	return grouped + "." + fracPart
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold use comma-separated format.
// Values at or above LargeNumberThreshold use "~X.X million" format.
// Values at or above BillionThreshold use "~X.X billion" format.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// FormatMass renders a kg CO2e figure with its tonne equivalent.
// Example: FormatMass(30888000000) returns "30,888,000,000 kg (~30.9 million tonnes)".
func FormatMass(kg float64) string {
	tonnes := kg / TonsToKg
	if tonnes < 1 {
		return FormatNumber(int64(math.Round(kg))) + " kg"
	}
	return fmt.Sprintf("%s kg (%s tonnes)", FormatNumber(int64(math.Round(kg))), FormatLarge(tonnes))
}

// FormatArea renders an m² figure, adding km² once the area reaches 1 km².
// Example: FormatArea(15660000000) returns "15,660,000,000 m² (15,660.0 km²)".
func FormatArea(m2 float64) string {
	km2 := m2 / Km2ToM2
	if km2 < 1 {
		return FormatNumber(int64(math.Round(m2))) + " m²"
	}
	return fmt.Sprintf("%s m² (%s km²)", FormatNumber(int64(math.Round(m2))), FormatFloat(km2, 1))
}

// formatEquivalencyValue formats an equivalency value for display, switching
// to abbreviated notation at LargeNumberThreshold.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
