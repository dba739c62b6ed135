// Package searchspace materializes the valid region of a parameterized
// experiment space and serves it to recommenders in two row-aligned
// representations.
//
// The centerpiece is BuildDiscrete: a depth-first enumeration of the
// Cartesian product of the discrete parameters' domains. Row-predicate
// constraints prune branches at the shallowest assignment depth where all
// of their parameters are bound, so invalid prefixes never fan out across
// the remaining domains; table-filter constraints run once against the
// fully enumerated provisional table. Surviving rows are deduplicated by
// their full value tuple and their generation order is frozen, making the
// build deterministic: identical inputs always yield identical tables.
//
// Each row carries a stable identifier hashed from its content, not its
// position, so measured and recommended rows keep their identity across
// rebuilds. The SearchSpace tracks those identifier sets and answers
// candidate requests, failing with *EmptyError only at the point candidates
// are actually required. Row and time budgets abort oversized products with
// *TooLargeError before memory is exhausted.
package searchspace
