package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		wantErr error
	}{
		{name: "grams", value: 1000, unit: "g", wantKg: 1},
		{name: "kilograms", value: 150, unit: "kg", wantKg: 150},
		{name: "tonnes", value: 26.6, unit: "t", wantKg: 26_600},
		{name: "pounds", value: 100, unit: "lb", wantKg: 45.3592},
		{name: "co2e suffix case insensitive", value: 2, unit: "TCO2E", wantKg: 2000},
		{name: "zero", value: 0, unit: "kg", wantKg: 0},
		{name: "negative", value: -1, unit: "kg", wantErr: ErrNegativeValue},
		{name: "NaN", value: math.NaN(), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "Inf", value: math.Inf(1), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "overflow", value: math.MaxFloat64, unit: "t", wantErr: ErrCalculationOverflow},
		{name: "unknown unit", value: 1, unit: "oz", wantErr: ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, 1e-9)
		})
	}
}

func TestNormalizeToM2(t *testing.T) {
	tests := []struct {
		unit   string
		value  float64
		wantM2 float64
	}{
		{unit: "m2", value: 7000, wantM2: 7000},
		{unit: "m²", value: 1, wantM2: 1},
		{unit: "ha", value: 2, wantM2: 20_000},
		{unit: "KM2", value: 15_660, wantM2: 15_660_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, err := NormalizeToM2(tt.value, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantM2, got, 1e-6)
		})
	}

	_, err := NormalizeToM2(1, "kg")
	require.ErrorIs(t, err, ErrInvalidUnit)
}
