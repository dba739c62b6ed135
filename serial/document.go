package serial

import (
	"github.com/AdrianSosic/BayBE-dev/searchspace"
)

//////
// Const, vars, types.
//////

// ParameterDoc is the document form of one parameter. Type selects the
// variant ("Categorical", "NumericDiscrete", "Substance" or "Continuous");
// the remaining fields belong to the variant named in their comment and stay
// empty otherwise.
type ParameterDoc struct {
	// Type is the variant tag.
	Type string `json:"type" yaml:"type" validate:"required"`

	// Name is the parameter identifier, unique within the document.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Labels is the ordered categorical domain. Categorical only.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Encoding is "OHE" or "INT". Empty selects "OHE". Categorical only.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty" validate:"omitempty,oneof=OHE INT"`

	// Values is the ordered numeric domain. NumericDiscrete only.
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`

	// Tolerance is the level-matching distance. NumericDiscrete only.
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	// Descriptors names the descriptor dimensions. Substance only.
	Descriptors []string `json:"descriptors,omitempty" yaml:"descriptors,omitempty"`

	// Entries is the ordered substance domain. Substance only.
	Entries []SubstanceEntryDoc `json:"entries,omitempty" yaml:"entries,omitempty" validate:"dive"`

	// Decorrelate is the descriptor correlation threshold; zero disables
	// the filter. Substance only.
	Decorrelate float64 `json:"decorrelate,omitempty" yaml:"decorrelate,omitempty"`

	// Low and High are the interval bounds. Continuous only.
	Low  float64 `json:"low,omitempty" yaml:"low,omitempty"`
	High float64 `json:"high,omitempty" yaml:"high,omitempty"`
}

// SubstanceEntryDoc is one labeled descriptor vector of a substance domain.
type SubstanceEntryDoc struct {
	Label      string    `json:"label" yaml:"label" validate:"required"`
	Descriptor []float64 `json:"descriptor" yaml:"descriptor" validate:"required,min=1"`
}

// ConditionDoc is the document form of a condition. A threshold carries an
// operator with its bound and tolerance; a subselection carries the In list.
// Declaring both is rejected, declaring neither as well.
type ConditionDoc struct {
	// Operator is one of "<", "<=", ">", ">=", "=" and "!=".
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`

	// Bound is the threshold value.
	Bound float64 `json:"bound,omitempty" yaml:"bound,omitempty"`

	// Tolerance widens equality comparisons.
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	// In lists the accepted values of a subselection, each a string label
	// or a numeric level.
	In []any `json:"in,omitempty" yaml:"in,omitempty"`
}

// OnDoc pairs a parameter name with the condition evaluated on its value.
type OnDoc struct {
	Parameter string       `json:"parameter" yaml:"parameter" validate:"required"`
	Condition ConditionDoc `json:"condition" yaml:"condition"`
}

// ConstraintDoc is the document form of one constraint. Type selects the
// variant ("Exclude", "Sum", "Product", "Cardinality", "Dependencies",
// "NoLabelDuplicates", "Linked" or "Permutation"). Custom constraints carry
// a validator function and have no document form.
type ConstraintDoc struct {
	// Type is the variant tag.
	Type string `json:"type" yaml:"type" validate:"required"`

	// Conditions pairs parameters with conditions. Exclude only.
	Conditions []OnDoc `json:"conditions,omitempty" yaml:"conditions,omitempty" validate:"dive"`

	// Combine is "AND" or "OR". Empty selects "AND". Exclude only.
	Combine string `json:"combine,omitempty" yaml:"combine,omitempty" validate:"omitempty,oneof=AND OR"`

	// Parameters names the constrained parameters. All variants except
	// Exclude and Dependencies.
	Parameters []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Condition is the threshold of a Sum or Product constraint, or the
	// activation condition of a Dependencies constraint.
	Condition *ConditionDoc `json:"condition,omitempty" yaml:"condition,omitempty"`

	// Min and Max bound the non-zero count. Cardinality only.
	Min int `json:"min,omitempty" yaml:"min,omitempty"`
	Max int `json:"max,omitempty" yaml:"max,omitempty"`

	// Cause names the controlling parameter. Dependencies only.
	Cause string `json:"cause,omitempty" yaml:"cause,omitempty"`

	// Affected names the parameters active only while the cause satisfies
	// the condition. Dependencies only.
	Affected []string `json:"affected,omitempty" yaml:"affected,omitempty"`
}

// KernelDoc is the document form of a kernel tree. Type selects the variant
// ("RBF", "Matern", "Scale", "Sum" or "Product"); Scale nests its base and
// the composite variants nest their children.
type KernelDoc struct {
	// Type is the variant tag.
	Type string `json:"type" yaml:"type" validate:"required"`

	// LengthScale is the distance decay rate. RBF and Matern.
	LengthScale float64 `json:"length_scale,omitempty" yaml:"length_scale,omitempty"`

	// Nu is the smoothness parameter: 0.5, 1.5 or 2.5. Matern only.
	Nu float64 `json:"nu,omitempty" yaml:"nu,omitempty"`

	// OutputScale is the multiplicative factor. Scale only.
	OutputScale float64 `json:"output_scale,omitempty" yaml:"output_scale,omitempty"`

	// Base is the wrapped kernel. Scale only.
	Base *KernelDoc `json:"base,omitempty" yaml:"base,omitempty"`

	// Terms are the added kernels. Sum only.
	Terms []KernelDoc `json:"terms,omitempty" yaml:"terms,omitempty" validate:"dive"`

	// Factors are the multiplied kernels. Product only.
	Factors []KernelDoc `json:"factors,omitempty" yaml:"factors,omitempty" validate:"dive"`
}

// BoundsDoc is a closed numeric interval.
type BoundsDoc struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// TargetDoc is the document form of one target. Type selects the variant
// ("Numerical" or "Binary").
type TargetDoc struct {
	// Type is the variant tag.
	Type string `json:"type" yaml:"type" validate:"required"`

	// Name is the target identifier, unique within the objective.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Mode is "MAX", "MIN" or "MATCH". Numerical only.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=MAX MIN MATCH"`

	// Bounds confine the raw values; absent means unbounded. Numerical
	// only.
	Bounds *BoundsDoc `json:"bounds,omitempty" yaml:"bounds,omitempty"`

	// Transform is "LINEAR", "TRIANGULAR" or "BELL" and applies only with
	// bounds. Empty selects "LINEAR". Numerical only.
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty" validate:"omitempty,oneof=LINEAR TRIANGULAR BELL"`

	// Positive and Negative are the two accepted raw values. Binary only.
	Positive float64 `json:"positive,omitempty" yaml:"positive,omitempty"`
	Negative float64 `json:"negative,omitempty" yaml:"negative,omitempty"`
}

// ObjectiveDoc is the document form of an objective. Type is "SINGLE" with
// exactly one target, or "DESIRABILITY" with several weighted ones.
type ObjectiveDoc struct {
	// Type is the variant tag.
	Type string `json:"type" yaml:"type" validate:"required,oneof=SINGLE DESIRABILITY"`

	// Targets are the scored targets, at least one.
	Targets []TargetDoc `json:"targets" yaml:"targets" validate:"required,min=1,dive"`

	// Weights scale the targets' contributions. Desirability only; absent
	// means equal weights.
	Weights []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Combine is "MEAN" or "GEOM_MEAN". Empty selects "MEAN".
	// Desirability only.
	Combine string `json:"combine,omitempty" yaml:"combine,omitempty" validate:"omitempty,oneof=MEAN GEOM_MEAN"`
}

// RecommenderDoc is the document form of one recommender. Type selects the
// variant ("Random", "FPS" or "SequentialGreedy").
type RecommenderDoc struct {
	// Type is the variant tag.
	Type string `json:"type" yaml:"type" validate:"required"`

	// Seed drives the random source. Random and SequentialGreedy.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Kernel is the covariance kernel; absent selects the default RBF.
	// SequentialGreedy only.
	Kernel *KernelDoc `json:"kernel,omitempty" yaml:"kernel,omitempty"`

	// Acquisition is "UCB", "EI", "PI" or "TS". Empty selects "UCB".
	// SequentialGreedy only.
	Acquisition string `json:"acquisition,omitempty" yaml:"acquisition,omitempty" validate:"omitempty,oneof=UCB EI PI TS"`

	// Beta is the exploration weight for UCB. SequentialGreedy only.
	Beta float64 `json:"beta,omitempty" yaml:"beta,omitempty"`

	// Xi is the improvement margin for EI and PI. SequentialGreedy only.
	Xi float64 `json:"xi,omitempty" yaml:"xi,omitempty"`
}

// CandidateOptionsDoc is the document form of candidate selection options.
type CandidateOptionsDoc struct {
	AllowRepeatedRecommendations     bool `json:"allow_repeated_recommendations,omitempty" yaml:"allow_repeated_recommendations,omitempty"`
	AllowRecommendingAlreadyMeasured bool `json:"allow_recommending_already_measured,omitempty" yaml:"allow_recommending_already_measured,omitempty"`
}

// StrategyDoc is the document form of a two-phase strategy.
type StrategyDoc struct {
	// Initial serves while no measurements exist; absent means Main serves
	// the first batch too.
	Initial *RecommenderDoc `json:"initial,omitempty" yaml:"initial,omitempty"`

	// Main serves once measurements exist.
	Main *RecommenderDoc `json:"main" yaml:"main" validate:"required"`

	// Options filter the candidate rows offered to both phases.
	Options *CandidateOptionsDoc `json:"options,omitempty" yaml:"options,omitempty"`
}

// BuildOptionsDoc is the document form of the subspace build options.
type BuildOptionsDoc struct {
	AllowDuplicates bool `json:"allow_duplicates,omitempty" yaml:"allow_duplicates,omitempty"`
	MaxRows         int  `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`

	// MaxDuration is a duration string such as "30s". Empty disables the
	// time budget.
	MaxDuration string `json:"max_duration,omitempty" yaml:"max_duration,omitempty"`
}

// SearchSpaceDoc is the document form of a search space: the declarations it
// is built from plus, optionally, the identifiers of rows already measured
// or recommended. Rebuilding from identical declarations reproduces the row
// order exactly, so the identifiers stay valid across the round trip.
type SearchSpaceDoc struct {
	// Parameters declares the discrete and continuous parameters, in
	// order.
	Parameters []ParameterDoc `json:"parameters" yaml:"parameters" validate:"required,min=1,dive"`

	// Constraints declares the constraints, in order.
	Constraints []ConstraintDoc `json:"constraints,omitempty" yaml:"constraints,omitempty" validate:"dive"`

	// Build holds the build options; absent selects the defaults.
	Build *BuildOptionsDoc `json:"build,omitempty" yaml:"build,omitempty"`

	// Measured and Recommended are the marked row identifiers, in subspace
	// row order.
	Measured    []searchspace.RowID `json:"measured,omitempty" yaml:"measured,omitempty"`
	Recommended []searchspace.RowID `json:"recommended,omitempty" yaml:"recommended,omitempty"`
}

// CampaignDoc is the top-level configuration document a campaign is built
// from.
type CampaignDoc struct {
	// Parameters declares the discrete and continuous parameters, in
	// order.
	Parameters []ParameterDoc `json:"parameters" yaml:"parameters" validate:"required,min=1,dive"`

	// Constraints declares the constraints, in order.
	Constraints []ConstraintDoc `json:"constraints,omitempty" yaml:"constraints,omitempty" validate:"dive"`

	// Objective declares the optimization goal.
	Objective *ObjectiveDoc `json:"objective" yaml:"objective" validate:"required"`

	// Strategy declares the recommender pairing; absent selects the
	// default strategy.
	Strategy *StrategyDoc `json:"strategy,omitempty" yaml:"strategy,omitempty"`

	// Build holds the subspace build options; absent selects the defaults.
	Build *BuildOptionsDoc `json:"build,omitempty" yaml:"build,omitempty"`
}
