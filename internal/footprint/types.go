package footprint

import (
	"fmt"
	"math"
	"strings"
)

// Coordinates is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Ingredient is one sourced feed ingredient and its per-kg footprint factors.
type Ingredient struct {
	// Name identifies the ingredient and is unique within a Table.
	Name string `json:"name" yaml:"name"`

	// Origin is a free-text sourcing location, e.g. "Mato Grosso, Brazil".
	Origin string `json:"origin" yaml:"origin"`

	// Coordinates locate the origin for map front-ends.
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`

	// CO2PerKg is kg CO2e emitted per kg of ingredient produced.
	CO2PerKg float64 `json:"co2e_kg_per_kg" yaml:"co2e_kg_per_kg"`

	// LandPerKg is m² of land required per kg of ingredient produced.
	LandPerKg float64 `json:"land_m2_per_kg" yaml:"land_m2_per_kg"`

	// FeedSharePercent is the share of the feed mix by mass, in [0,100].
	// Only the extended dataset carries it.
	FeedSharePercent *float64 `json:"feed_share_percent,omitempty" yaml:"feed_share_percent,omitempty"`
}

// Validate checks a single ingredient's name and factor ranges.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidIngredient)
	}
	if !isFinite(i.CO2PerKg) || i.CO2PerKg < 0 {
		return fmt.Errorf("%w: %s: co2e per kg must be a non-negative number, got %v",
			ErrInvalidIngredient, i.Name, i.CO2PerKg)
	}
	if !isFinite(i.LandPerKg) || i.LandPerKg < 0 {
		return fmt.Errorf("%w: %s: land per kg must be a non-negative number, got %v",
			ErrInvalidIngredient, i.Name, i.LandPerKg)
	}
	if i.Coordinates.Lat < -90 || i.Coordinates.Lat > 90 ||
		i.Coordinates.Lon < -180 || i.Coordinates.Lon > 180 {
		return fmt.Errorf("%w: %s: coordinates out of range (%v, %v)",
			ErrInvalidIngredient, i.Name, i.Coordinates.Lat, i.Coordinates.Lon)
	}
	if s := i.FeedSharePercent; s != nil && (!isFinite(*s) || *s < 0 || *s > 100) {
		return fmt.Errorf("%w: %s: feed share must be within [0,100], got %v",
			ErrInvalidIngredient, i.Name, *s)
	}
	return nil
}

// Table is an ordered set of ingredients. Order matters for blend resolution.
type Table []Ingredient

// Validate checks every ingredient and rejects duplicate names
// (case-insensitive). An empty table is reported as ErrEmptyIngredientTable.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyIngredientTable
	}
	seen := make(map[string]struct{}, len(t))
	for _, ing := range t {
		if err := ing.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(ing.Name))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateIngredient, ing.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Lookup returns the ingredient whose name equals name, ignoring case.
func (t Table) Lookup(name string) (Ingredient, bool) {
	for _, ing := range t {
		if strings.EqualFold(ing.Name, name) {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// BlendComponent is one entry of a feed blend: a key resolved against
// ingredient names and the mass fraction it represents.
type BlendComponent struct {
	Key      string  `json:"key" yaml:"key"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// Blend is the mass-fraction composition of a feed, in declaration order.
type Blend []BlendComponent

// Sum returns the total of all fractions.
func (b Blend) Sum() float64 {
	var sum float64
	for _, c := range b {
		sum += c.Fraction
	}
	return sum
}

// Validate checks that every fraction is a finite number within [0,1] and
// that no key appears twice. Keys are compared case-insensitively after
// trimming.
func (b Blend) Validate() error {
	seen := make(map[string]struct{}, len(b))
	for _, c := range b {
		if !isFinite(c.Fraction) || c.Fraction < 0 || c.Fraction > 1 {
			return fmt.Errorf("%w: fraction for %q must be within [0,1], got %v",
				ErrInvalidScalar, c.Key, c.Fraction)
		}
		key := strings.ToLower(strings.TrimSpace(c.Key))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateBlendKey, c.Key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Without returns a copy of the blend with every component named key removed.
func (b Blend) Without(key string) Blend {
	out := make(Blend, 0, len(b))
	for _, c := range b {
		if c.Key != key {
			out = append(out, c)
		}
	}
	return out
}

// Contribution is the footprint attributed to one resolved blend component.
type Contribution struct {
	// Key is the blend key as written in the blend.
	Key string `json:"key"`

	// Ingredient is the name of the ingredient the key resolved to.
	Ingredient string `json:"ingredient"`

	// Fraction is the blend mass fraction.
	Fraction float64 `json:"fraction"`

	// CO2Kg is kg CO2e contributed per tonne of output.
	CO2Kg float64 `json:"co2e_kg"`

	// LandM2 is m² of land contributed per tonne of output.
	LandM2 float64 `json:"land_m2"`

	// Candidates is the number of ingredients the key matched. Values above
	// one mean the first match in table order was used.
	Candidates int `json:"candidates"`
}

// Totals is the footprint of one metric tonne of farmed output.
type Totals struct {
	Scenario string  `json:"scenario,omitempty"`
	CO2Kg    float64 `json:"co2e_kg"`
	LandM2   float64 `json:"land_m2"`
}

// NationalImpact is a Totals scaled to a national production volume.
type NationalImpact struct {
	Scenario         string  `json:"scenario,omitempty"`
	ProductionTonnes float64 `json:"production_tonnes"`
	CO2Kg            float64 `json:"co2e_kg"`
	LandM2           float64 `json:"land_m2"`
}

// WarningKind classifies a non-fatal aggregation condition.
type WarningKind int

const (
	// WarningUnresolvedBlendKey marks a blend key that matched no ingredient.
	WarningUnresolvedBlendKey WarningKind = iota

	// WarningAmbiguousBlendKey marks a blend key that matched several ingredients.
	WarningAmbiguousBlendKey
)

// String returns a human-readable representation of the WarningKind.
func (k WarningKind) String() string {
	switch k {
	case WarningUnresolvedBlendKey:
		return "UnresolvedBlendKey"
	case WarningAmbiguousBlendKey:
		return "AmbiguousBlendKey"
	default:
		return fmt.Sprintf("WarningKind(%d)", k)
	}
}

// MarshalText encodes the kind by name for JSON output.
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *WarningKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "UnresolvedBlendKey":
		*k = WarningUnresolvedBlendKey
	case "AmbiguousBlendKey":
		*k = WarningAmbiguousBlendKey
	default:
		return fmt.Errorf("unknown warning kind %q", text)
	}
	return nil
}

// Warning is a non-fatal condition raised while aggregating a blend.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Key     string      `json:"key"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

func newWarning(kind WarningKind, key string, err error) Warning {
	return Warning{Kind: kind, Key: key, Message: err.Error(), Err: err}
}

// Error implements error so a warning can be logged or wrapped directly.
func (w Warning) Error() string {
	if w.Message != "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %q", w.Kind, w.Key)
}

// Unwrap exposes the sentinel error carried by the warning.
func (w Warning) Unwrap() error { return w.Err }

// Result is the output of ComputePerTonne.
type Result struct {
	Totals        Totals         `json:"totals"`
	Contributions []Contribution `json:"contributions"`
	Warnings      []Warning      `json:"warnings,omitempty"`
}

// WarningsOf returns the warnings of the given kind, in emission order.
func (r Result) WarningsOf(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
