// Package surrogate provides the probabilistic model fit on measured
// outcomes to predict the objective at unmeasured candidates.
//
// The Gaussian-process regressor interpolates observations under a
// pluggable covariance function compiled by the kernel package and reports
// a posterior mean together with an uncertainty estimate, which is what
// acquisition functions trade off against each other.
package surrogate
