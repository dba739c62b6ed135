package param

import (
	"fmt"
	"math"
)

//////
// Interfaces.
//////

// Parameter is the common surface of every parameter variant. A parameter is
// constructed once, validated at construction, and immutable afterwards; it
// is owned exclusively by the search space that contains it.
type Parameter interface {
	// Name returns the identifier, unique within the owning search space.
	Name() string
}

// Discrete is a parameter with an enumerable domain and a deterministic
// numeric encoding. Encoding the full domain happens once at construction;
// Encode afterwards is a cache lookup.
//
// Implementations: Categorical, NumericDiscrete, Substance.
type Discrete interface {
	Parameter

	// Values returns the ordered domain. The slice is a copy; mutating it
	// does not affect the parameter.
	Values() []Value

	// Columns returns the names of the numeric feature columns this
	// parameter contributes to the computational representation. A parameter
	// expanding to a single column reuses its own name; multi-column
	// encodings suffix the parameter name.
	Columns() []string

	// Encode maps a domain value to its numeric feature vector, aligned with
	// Columns. Values outside the declared domain fail with *DomainError.
	// The returned slice is a fresh copy on every call.
	Encode(v Value) ([]float64, error)

	// InDomain reports whether v is one of the declared domain values.
	InDomain(v Value) bool
}

//////
// Shared helpers.
//////

// validateName rejects empty parameter names.
func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	return nil
}

// checkFinite rejects NaN and infinities, naming the parameter for context.
func checkFinite(name string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %q: %w", name, ErrNonFinite)
		}
	}

	return nil
}

// columnName joins a parameter name and an encoding suffix into a feature
// column name.
func columnName(param, suffix string) string {
	return param + "_" + suffix
}

// copyFloats returns a fresh copy so cached encodings stay immutable even if
// callers modify the result.
func copyFloats(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)

	return dst
}
