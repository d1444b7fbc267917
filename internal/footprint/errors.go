package footprint

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for footprint calculations, compared with errors.Is().
var (
	// ErrUnresolvedBlendKey indicates a blend key that matched no ingredient.
	// It is never returned as a failure; it is carried by a Warning.
	ErrUnresolvedBlendKey = constError("unresolved blend key")

	// ErrAmbiguousBlendKey indicates a blend key that matched more than one
	// ingredient. The first match in table order is used.
	ErrAmbiguousBlendKey = constError("ambiguous blend key")

	// ErrInvalidScalar indicates a mass, fraction or production value that is
	// negative, zero where a positive value is required, NaN or infinite.
	ErrInvalidScalar = constError("invalid scalar")

	// ErrEmptyIngredientTable indicates that no ingredients were supplied.
	ErrEmptyIngredientTable = constError("empty ingredient table")

	// ErrInvalidIngredient indicates an ingredient with a missing name or an
	// out-of-range factor.
	ErrInvalidIngredient = constError("invalid ingredient")

	// ErrDuplicateIngredient indicates two ingredients sharing a name.
	ErrDuplicateIngredient = constError("duplicate ingredient")

	// ErrDuplicateBlendKey indicates a blend listing the same key twice,
	// compared case-insensitively after trimming.
	ErrDuplicateBlendKey = constError("duplicate blend key")
)
