// Package acquisition scores candidate experiments from a surrogate model's
// posterior predictions. Every function follows the same convention: higher
// scores mean more promising candidates, matching the campaign objective
// which is always scalarized so that higher is better.
//
// Four functions are provided: UCB (upper confidence bound), PI (probability
// of improvement), EI (expected improvement), and TS (Thompson sampling).
// They share the Params struct, which recommenders refresh from the
// measurement history before each scoring pass.
package acquisition
