// Package param declares the parameter variants an experimental search space
// is made of, together with their deterministic numeric encodings.
//
// # Variants
//
//   - Categorical: ordered unique string labels, encoded as one-hot indicator
//     columns or as a single integer-code column
//   - NumericDiscrete: finite numeric levels with a matching tolerance,
//     encoded as the level value itself
//   - Substance: labeled entities carrying caller-supplied descriptor
//     vectors, optionally decorrelated, encoded as the descriptor columns
//   - Continuous: a closed interval, identity encoding
//
// # Encoding contract
//
// Encoding is deterministic and injective on the declared domain: the same
// domain value always yields the same numeric vector. For numeric-discrete
// parameters, declared values within tolerance of each other collapse into a
// single level at construction; the collapsing rule is part of the contract,
// not a violation of injectivity. The full domain is encoded once at
// construction, so per-row encoding during search-space builds is a cache
// lookup.
//
// Values outside the declared domain fail with *DomainError. Measured raw
// numeric values are resolved to levels with NumericDiscrete.Match, which
// fails with *AmbiguousToleranceMatchError when two levels are in reach.
//
// # Immutability
//
// Parameters are constructed once, validated at construction, and never
// mutated afterwards. Accessors return copies; mutating a returned
// slice never reaches the parameter.
package param
