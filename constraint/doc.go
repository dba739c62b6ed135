// Package constraint restricts which parameter combinations of a discrete
// search space describe valid experiments.
//
// Constraints come in two evaluation shapes. A RowPredicate judges a single
// row in isolation and is applied during enumeration, as soon as every
// parameter it references has been assigned, so invalid branches are pruned
// before they fan out. A TableFilter reasons over the assembled table, e.g.
// sums across columns, and runs as a post-enumeration pass returning a keep
// mask. Lift adapts any predicate to the filter shape.
//
// Available constraints:
//
//   - Exclude: forbids regions described by per-parameter conditions joined
//     with AND or OR.
//   - Sum, Product: thresholds on row aggregates of numeric parameters.
//   - Cardinality: bounds the number of non-zero values within a row.
//   - NoLabelDuplicates, Linked: pairwise-distinct respectively all-equal
//     values across parameters.
//   - Dependencies: pins dependent parameters to a placeholder while their
//     activating parameter is off.
//   - Permutation: keeps a single canonical representative of rows that are
//     permutations of each other.
//   - Custom: wraps an arbitrary validator function.
//
// All constraints are immutable after construction and safe for concurrent
// use. Failures during evaluation surface as *EvaluationError carrying the
// offending row; references to undeclared parameters surface as
// *UnknownParameterError when the search space is built.
package constraint
