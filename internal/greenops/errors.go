package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for equivalency calculations, compared with errors.Is().
var (
	// ErrInvalidUnit indicates an unrecognized carbon or area unit.
	ErrInvalidUnit = constError("invalid unit")

	// ErrNegativeValue indicates a negative footprint value.
	ErrNegativeValue = constError("negative footprint value")

	// ErrCalculationOverflow indicates a NaN, infinite or overflowing value.
	ErrCalculationOverflow = constError("calculation overflow")
)
