// Package kernel describes Gaussian-process covariance structures as plain
// data and compiles them into executable covariance functions.
//
// Descriptions form a closed set of variants (RBF, Matern, Scale, Sum,
// Product) that Compile translates one by one into closures over float64
// vectors. Keeping the translation explicit and exhaustive trades a little
// boilerplate for compile-time certainty about what each configuration
// means; there is no reflection and no runtime registry.
package kernel
