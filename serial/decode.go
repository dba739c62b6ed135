package serial

import (
	"fmt"
	"time"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/kernel"
	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/recommender"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/target"
)

//////
// Exported functionalities.
//////

// DecodeCondition rebuilds a threshold or subselection condition. The In
// list selects a subselection, an operator selects a threshold.
func (r *Registry) DecodeCondition(doc *ConditionDoc) (constraint.Condition, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	if len(doc.In) > 0 {
		if doc.Operator != "" {
			return nil, ErrAmbiguousCondition
		}

		values := make([]param.Value, len(doc.In))

		for i, raw := range doc.In {
			v, err := param.FromInterface(raw)
			if err != nil {
				return nil, err
			}

			values[i] = v
		}

		cond, err := constraint.NewSubSelection(values...)
		if err != nil {
			return nil, err
		}

		return cond, nil
	}

	if doc.Operator == "" {
		return nil, ErrEmptyCondition
	}

	op, err := constraint.ParseOperator(doc.Operator)
	if err != nil {
		return nil, err
	}

	cond, err := constraint.NewThreshold(op, doc.Bound, doc.Tolerance)
	if err != nil {
		return nil, err
	}

	return cond, nil
}

// DecodeParameters rebuilds a parameter list, splitting it into the discrete
// and continuous parameters a search space is composed from. Declaration
// order is preserved within each group.
func (r *Registry) DecodeParameters(
	docs []ParameterDoc,
) ([]param.Discrete, []*param.Continuous, error) {
	var (
		discrete   []param.Discrete
		continuous []*param.Continuous
	)

	for i := range docs {
		p, err := r.DecodeParameter(&docs[i])
		if err != nil {
			return nil, nil, fmt.Errorf("parameter %d: %w", i, err)
		}

		switch t := p.(type) {
		case param.Discrete:
			discrete = append(discrete, t)
		case *param.Continuous:
			continuous = append(continuous, t)
		default:
			return nil, nil, &UnknownTagError{Kind: "parameter", Tag: fmt.Sprintf("%T", p)}
		}
	}

	return discrete, continuous, nil
}

// DecodeObjective rebuilds an objective with its targets.
func (r *Registry) DecodeObjective(doc *ObjectiveDoc) (*target.Objective, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	targets := make([]target.Target, len(doc.Targets))

	for i := range doc.Targets {
		t, err := r.DecodeTarget(&doc.Targets[i])
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}

		targets[i] = t
	}

	switch doc.Type {
	case "SINGLE":
		if len(targets) != 1 {
			return nil, fmt.Errorf(
				"serial: single objective requires exactly one target, got %d", len(targets),
			)
		}

		return target.NewSingle(targets[0])
	case "DESIRABILITY":
		combine := target.Mean

		if doc.Combine != "" {
			var err error

			combine, err = target.ParseCombine(doc.Combine)
			if err != nil {
				return nil, err
			}
		}

		return target.NewDesirability(targets, doc.Weights, combine)
	default:
		return nil, &UnknownTagError{Kind: "objective", Tag: doc.Type}
	}
}

// DecodeStrategy rebuilds a two-phase strategy.
func (r *Registry) DecodeStrategy(doc *StrategyDoc) (*recommender.Strategy, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	main, err := r.DecodeRecommender(doc.Main)
	if err != nil {
		return nil, fmt.Errorf("main: %w", err)
	}

	var initial recommender.Recommender

	if doc.Initial != nil {
		initial, err = r.DecodeRecommender(doc.Initial)
		if err != nil {
			return nil, fmt.Errorf("initial: %w", err)
		}
	}

	var opts searchspace.CandidateOptions

	if doc.Options != nil {
		opts = searchspace.CandidateOptions{
			AllowRepeatedRecommendations:     doc.Options.AllowRepeatedRecommendations,
			AllowRecommendingAlreadyMeasured: doc.Options.AllowRecommendingAlreadyMeasured,
		}
	}

	return recommender.NewStrategy(initial, main, opts)
}

// DecodeSearchSpace rebuilds a search space from its document form and
// restores the measured and recommended marks. Identical declarations
// reproduce the subspace row order exactly, so every restored identifier is
// checked against the rebuilt rows and a stale one fails the decode.
func (r *Registry) DecodeSearchSpace(doc *SearchSpaceDoc) (*searchspace.SearchSpace, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	discrete, continuous, err := r.DecodeParameters(doc.Parameters)
	if err != nil {
		return nil, err
	}

	constraints := make([]constraint.Constraint, len(doc.Constraints))

	for i := range doc.Constraints {
		c, err := r.DecodeConstraint(&doc.Constraints[i])
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}

		constraints[i] = c
	}

	opts, err := DecodeBuildOptions(doc.Build)
	if err != nil {
		return nil, err
	}

	space, err := searchspace.FromParameters(discrete, continuous, constraints, opts)
	if err != nil {
		return nil, err
	}

	if err := restoreState(space, doc); err != nil {
		return nil, err
	}

	return space, nil
}

// DecodeBuildOptions parses the build options, applying the defaults when
// the document carries none.
func DecodeBuildOptions(doc *BuildOptionsDoc) (searchspace.BuildOptions, error) {
	if doc == nil {
		return searchspace.DefaultBuildOptions(), nil
	}

	opts := searchspace.BuildOptions{
		AllowDuplicates: doc.AllowDuplicates,
		MaxRows:         doc.MaxRows,
	}

	if doc.MaxDuration != "" {
		d, err := time.ParseDuration(doc.MaxDuration)
		if err != nil {
			return opts, fmt.Errorf("serial: bad max_duration: %w", err)
		}

		opts.MaxDuration = d
	}

	return opts, nil
}

//////
// Parameter decoders.
//////

func (r *Registry) decodeCategorical(doc *ParameterDoc) (param.Parameter, error) {
	encoding := param.OneHot

	if doc.Encoding != "" {
		var err error

		encoding, err = param.ParseEncoding(doc.Encoding)
		if err != nil {
			return nil, err
		}
	}

	return param.NewCategorical(doc.Name, doc.Labels, encoding)
}

func (r *Registry) decodeNumericDiscrete(doc *ParameterDoc) (param.Parameter, error) {
	return param.NewNumericDiscrete(doc.Name, doc.Values, doc.Tolerance)
}

func (r *Registry) decodeSubstance(doc *ParameterDoc) (param.Parameter, error) {
	entries := make([]param.SubstanceEntry, len(doc.Entries))

	for i, e := range doc.Entries {
		entries[i] = param.SubstanceEntry{Label: e.Label, Descriptor: e.Descriptor}
	}

	return param.NewSubstance(doc.Name, doc.Descriptors, entries, doc.Decorrelate)
}

func (r *Registry) decodeContinuous(doc *ParameterDoc) (param.Parameter, error) {
	return param.NewContinuous(doc.Name, doc.Low, doc.High)
}

//////
// Constraint decoders.
//////

func (r *Registry) decodeExclude(doc *ConstraintDoc) (constraint.Constraint, error) {
	conditions := make([]constraint.On, len(doc.Conditions))

	for i := range doc.Conditions {
		cond, err := r.DecodeCondition(&doc.Conditions[i].Condition)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}

		conditions[i] = constraint.On{
			Parameter: doc.Conditions[i].Parameter,
			Condition: cond,
		}
	}

	combine := constraint.And

	if doc.Combine != "" {
		var err error

		combine, err = constraint.ParseCombiner(doc.Combine)
		if err != nil {
			return nil, err
		}
	}

	return constraint.NewExclude(conditions, combine)
}

func (r *Registry) decodeSum(doc *ConstraintDoc) (constraint.Constraint, error) {
	threshold, err := r.decodeThreshold(doc.Condition)
	if err != nil {
		return nil, err
	}

	return constraint.NewSum(doc.Parameters, threshold)
}

func (r *Registry) decodeProduct(doc *ConstraintDoc) (constraint.Constraint, error) {
	threshold, err := r.decodeThreshold(doc.Condition)
	if err != nil {
		return nil, err
	}

	return constraint.NewProduct(doc.Parameters, threshold)
}

func (r *Registry) decodeCardinality(doc *ConstraintDoc) (constraint.Constraint, error) {
	return constraint.NewCardinality(doc.Parameters, doc.Min, doc.Max)
}

func (r *Registry) decodeDependencies(doc *ConstraintDoc) (constraint.Constraint, error) {
	cond, err := r.DecodeCondition(doc.Condition)
	if err != nil {
		return nil, err
	}

	return constraint.NewDependencies(doc.Cause, cond, doc.Affected)
}

func (r *Registry) decodeNoLabelDuplicates(doc *ConstraintDoc) (constraint.Constraint, error) {
	return constraint.NewNoLabelDuplicates(doc.Parameters...)
}

func (r *Registry) decodeLinked(doc *ConstraintDoc) (constraint.Constraint, error) {
	return constraint.NewLinked(doc.Parameters...)
}

func (r *Registry) decodePermutation(doc *ConstraintDoc) (constraint.Constraint, error) {
	return constraint.NewPermutation(doc.Parameters...)
}

// decodeThreshold rebuilds a condition that must come out as a threshold.
func (r *Registry) decodeThreshold(doc *ConditionDoc) (constraint.Threshold, error) {
	cond, err := r.DecodeCondition(doc)
	if err != nil {
		return constraint.Threshold{}, err
	}

	threshold, ok := cond.(constraint.Threshold)
	if !ok {
		return constraint.Threshold{}, ErrThresholdRequired
	}

	return threshold, nil
}

//////
// Kernel decoders.
//////

func (r *Registry) decodeRBF(doc *KernelDoc) (kernel.Kernel, error) {
	return kernel.RBF{LengthScale: doc.LengthScale}, nil
}

func (r *Registry) decodeMatern(doc *KernelDoc) (kernel.Kernel, error) {
	return kernel.Matern{Nu: doc.Nu, LengthScale: doc.LengthScale}, nil
}

func (r *Registry) decodeScale(doc *KernelDoc) (kernel.Kernel, error) {
	base, err := r.DecodeKernel(doc.Base)
	if err != nil {
		return nil, err
	}

	return kernel.Scale{Base: base, OutputScale: doc.OutputScale}, nil
}

func (r *Registry) decodeKernelSum(doc *KernelDoc) (kernel.Kernel, error) {
	terms, err := r.decodeKernels(doc.Terms)
	if err != nil {
		return nil, err
	}

	return kernel.Sum{Terms: terms}, nil
}

func (r *Registry) decodeKernelProduct(doc *KernelDoc) (kernel.Kernel, error) {
	factors, err := r.decodeKernels(doc.Factors)
	if err != nil {
		return nil, err
	}

	return kernel.Product{Factors: factors}, nil
}

func (r *Registry) decodeKernels(docs []KernelDoc) ([]kernel.Kernel, error) {
	kernels := make([]kernel.Kernel, len(docs))

	for i := range docs {
		k, err := r.DecodeKernel(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("kernel %d: %w", i, err)
		}

		kernels[i] = k
	}

	return kernels, nil
}

//////
// Target decoders.
//////

func (r *Registry) decodeNumerical(doc *TargetDoc) (target.Target, error) {
	mode, err := target.ParseMode(doc.Mode)
	if err != nil {
		return nil, err
	}

	if doc.Bounds == nil {
		return target.NewNumerical(doc.Name, mode)
	}

	transform := target.Linear

	if doc.Transform != "" {
		transform, err = target.ParseTransform(doc.Transform)
		if err != nil {
			return nil, err
		}
	}

	return target.NewNumericalBounded(doc.Name, mode, doc.Bounds.Low, doc.Bounds.High, transform)
}

func (r *Registry) decodeBinary(doc *TargetDoc) (target.Target, error) {
	return target.NewBinary(doc.Name, doc.Positive, doc.Negative)
}

//////
// Recommender decoders.
//////

func (r *Registry) decodeRandom(doc *RecommenderDoc) (recommender.Recommender, error) {
	return recommender.NewRandom(doc.Seed), nil
}

func (r *Registry) decodeFarthestPoint(*RecommenderDoc) (recommender.Recommender, error) {
	return recommender.NewFarthestPoint(), nil
}

func (r *Registry) decodeSequentialGreedy(doc *RecommenderDoc) (recommender.Recommender, error) {
	opts := recommender.BayesianOptions{
		Acquisition: doc.Acquisition,
		Beta:        doc.Beta,
		Xi:          doc.Xi,
		Seed:        doc.Seed,
	}

	if doc.Kernel != nil {
		k, err := r.DecodeKernel(doc.Kernel)
		if err != nil {
			return nil, err
		}

		opts.Kernel = k
	}

	return recommender.NewBayesian(opts)
}

//////
// Helper functions.
//////

// restoreState re-marks the measured and recommended rows, verifying each
// identifier resolves to a row of the rebuilt subspace.
func restoreState(space *searchspace.SearchSpace, doc *SearchSpaceDoc) error {
	for _, id := range doc.Measured {
		if _, ok := space.Discrete().IndexOf(id); !ok {
			return fmt.Errorf("serial: measured row %d: %w", id, searchspace.ErrRowNotFound)
		}
	}

	for _, id := range doc.Recommended {
		if _, ok := space.Discrete().IndexOf(id); !ok {
			return fmt.Errorf("serial: recommended row %d: %w", id, searchspace.ErrRowNotFound)
		}
	}

	space.MarkMeasured(doc.Measured...)
	space.MarkRecommended(doc.Recommended...)

	return nil
}
