package serial

import (
	"fmt"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/kernel"
	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/recommender"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/target"
)

//////
// Const, vars, types.
//////

// SpaceConfig bundles the declarations a search space is built from. A built
// space does not retain its constraints, so serializing one starts from the
// declaration side.
type SpaceConfig struct {
	// Discrete are the discrete parameters, in declaration order.
	Discrete []param.Discrete

	// Continuous are the continuous parameters, in declaration order.
	Continuous []*param.Continuous

	// Constraints prune the discrete subspace.
	Constraints []constraint.Constraint

	// Build holds the subspace build options.
	Build searchspace.BuildOptions
}

//////
// Exported functionalities.
//////

// EncodeCondition renders a threshold or subselection condition.
func (r *Registry) EncodeCondition(c constraint.Condition) (*ConditionDoc, error) {
	switch t := c.(type) {
	case constraint.Threshold:
		return &ConditionDoc{
			Operator:  t.Operator().String(),
			Bound:     t.Bound(),
			Tolerance: t.Tolerance(),
		}, nil
	case constraint.SubSelection:
		values := t.Values()
		in := make([]any, len(values))

		for i, v := range values {
			in[i] = v.Interface()
		}

		return &ConditionDoc{In: in}, nil
	case nil:
		return nil, &UnknownTagError{Kind: "condition", Tag: "<nil>"}
	default:
		return nil, &UnknownTagError{Kind: "condition", Tag: fmt.Sprintf("%T", c)}
	}
}

// EncodeObjective renders an objective with its targets.
func (r *Registry) EncodeObjective(o *target.Objective) (*ObjectiveDoc, error) {
	if o == nil {
		return nil, &UnknownTagError{Kind: "objective", Tag: "<nil>"}
	}

	targets := o.Targets()
	doc := &ObjectiveDoc{Targets: make([]TargetDoc, len(targets))}

	for i, t := range targets {
		td, err := r.EncodeTarget(t)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}

		doc.Targets[i] = *td
	}

	if o.Single() {
		doc.Type = "SINGLE"

		return doc, nil
	}

	doc.Type = "DESIRABILITY"
	doc.Weights = o.Weights()
	doc.Combine = o.Combine().String()

	return doc, nil
}

// EncodeStrategy renders a two-phase strategy.
func (r *Registry) EncodeStrategy(s *recommender.Strategy) (*StrategyDoc, error) {
	if s == nil {
		return nil, &UnknownTagError{Kind: "strategy", Tag: "<nil>"}
	}

	main, err := r.EncodeRecommender(s.Main())
	if err != nil {
		return nil, fmt.Errorf("main: %w", err)
	}

	doc := &StrategyDoc{Main: main}

	if s.Initial() != nil {
		initial, err := r.EncodeRecommender(s.Initial())
		if err != nil {
			return nil, fmt.Errorf("initial: %w", err)
		}

		doc.Initial = initial
	}

	if opts := s.Options(); opts != (searchspace.CandidateOptions{}) {
		doc.Options = &CandidateOptionsDoc{
			AllowRepeatedRecommendations:     opts.AllowRepeatedRecommendations,
			AllowRecommendingAlreadyMeasured: opts.AllowRecommendingAlreadyMeasured,
		}
	}

	return doc, nil
}

// EncodeSearchSpace renders the declarations of a search space and, when
// state is non-nil, the measured and recommended row identifiers of the live
// space built from them.
func (r *Registry) EncodeSearchSpace(
	cfg SpaceConfig,
	state *searchspace.SearchSpace,
) (*SearchSpaceDoc, error) {
	doc := &SearchSpaceDoc{}

	for i, p := range cfg.Discrete {
		pd, err := r.EncodeParameter(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}

		doc.Parameters = append(doc.Parameters, *pd)
	}

	for i, p := range cfg.Continuous {
		pd, err := r.EncodeParameter(p)
		if err != nil {
			return nil, fmt.Errorf("continuous parameter %d: %w", i, err)
		}

		doc.Parameters = append(doc.Parameters, *pd)
	}

	for i, c := range cfg.Constraints {
		cd, err := r.EncodeConstraint(c)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}

		doc.Constraints = append(doc.Constraints, *cd)
	}

	doc.Build = EncodeBuildOptions(cfg.Build)

	if state != nil {
		doc.Measured, doc.Recommended = spaceState(state)
	}

	return doc, nil
}

// EncodeBuildOptions renders non-default build options, nil otherwise.
func EncodeBuildOptions(opts searchspace.BuildOptions) *BuildOptionsDoc {
	if opts == (searchspace.BuildOptions{}) {
		return nil
	}

	doc := &BuildOptionsDoc{
		AllowDuplicates: opts.AllowDuplicates,
		MaxRows:         opts.MaxRows,
	}

	if opts.MaxDuration != 0 {
		doc.MaxDuration = opts.MaxDuration.String()
	}

	return doc
}

//////
// Parameter encoders.
//////

func (r *Registry) encodeCategorical(p param.Parameter) (*ParameterDoc, error) {
	c := p.(*param.Categorical)

	return &ParameterDoc{
		Type:     "Categorical",
		Name:     c.Name(),
		Labels:   c.Labels(),
		Encoding: c.Encoding().String(),
	}, nil
}

func (r *Registry) encodeNumericDiscrete(p param.Parameter) (*ParameterDoc, error) {
	n := p.(*param.NumericDiscrete)

	return &ParameterDoc{
		Type:      "NumericDiscrete",
		Name:      n.Name(),
		Values:    n.Levels(),
		Tolerance: n.Tolerance(),
	}, nil
}

// encodeSubstance captures the descriptor columns that survived
// decorrelation, so decoding rebuilds the same encoded table without
// re-running the filter. Decorrelate is therefore left at zero.
func (r *Registry) encodeSubstance(p param.Parameter) (*ParameterDoc, error) {
	s := p.(*param.Substance)

	values := s.Values()
	entries := make([]SubstanceEntryDoc, len(values))

	for i, v := range values {
		vec, err := s.Encode(v)
		if err != nil {
			return nil, err
		}

		entries[i] = SubstanceEntryDoc{Label: v.Str(), Descriptor: vec}
	}

	return &ParameterDoc{
		Type:        "Substance",
		Name:        s.Name(),
		Descriptors: s.Descriptors(),
		Entries:     entries,
	}, nil
}

func (r *Registry) encodeContinuous(p param.Parameter) (*ParameterDoc, error) {
	c := p.(*param.Continuous)
	lo, hi := c.Bounds()

	return &ParameterDoc{Type: "Continuous", Name: c.Name(), Low: lo, High: hi}, nil
}

//////
// Constraint encoders.
//////

func (r *Registry) encodeExclude(c constraint.Constraint) (*ConstraintDoc, error) {
	e := c.(*constraint.Exclude)

	ons := e.Conditions()
	conditions := make([]OnDoc, len(ons))

	for i, on := range ons {
		cond, err := r.EncodeCondition(on.Condition)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}

		conditions[i] = OnDoc{Parameter: on.Parameter, Condition: *cond}
	}

	return &ConstraintDoc{
		Type:       "Exclude",
		Conditions: conditions,
		Combine:    e.Combiner().String(),
	}, nil
}

func (r *Registry) encodeSum(c constraint.Constraint) (*ConstraintDoc, error) {
	s := c.(*constraint.Sum)

	cond, err := r.EncodeCondition(s.Condition())
	if err != nil {
		return nil, err
	}

	return &ConstraintDoc{Type: "Sum", Parameters: s.Parameters(), Condition: cond}, nil
}

func (r *Registry) encodeProduct(c constraint.Constraint) (*ConstraintDoc, error) {
	p := c.(*constraint.Product)

	cond, err := r.EncodeCondition(p.Condition())
	if err != nil {
		return nil, err
	}

	return &ConstraintDoc{Type: "Product", Parameters: p.Parameters(), Condition: cond}, nil
}

func (r *Registry) encodeCardinality(c constraint.Constraint) (*ConstraintDoc, error) {
	card := c.(*constraint.Cardinality)
	min, max := card.Bounds()

	return &ConstraintDoc{
		Type:       "Cardinality",
		Parameters: card.Parameters(),
		Min:        min,
		Max:        max,
	}, nil
}

func (r *Registry) encodeDependencies(c constraint.Constraint) (*ConstraintDoc, error) {
	d := c.(*constraint.Dependencies)

	cond, err := r.EncodeCondition(d.Condition())
	if err != nil {
		return nil, err
	}

	return &ConstraintDoc{
		Type:      "Dependencies",
		Cause:     d.Cause(),
		Condition: cond,
		Affected:  d.Affected(),
	}, nil
}

func (r *Registry) encodeNoLabelDuplicates(c constraint.Constraint) (*ConstraintDoc, error) {
	return &ConstraintDoc{Type: "NoLabelDuplicates", Parameters: c.Parameters()}, nil
}

func (r *Registry) encodeLinked(c constraint.Constraint) (*ConstraintDoc, error) {
	return &ConstraintDoc{Type: "Linked", Parameters: c.Parameters()}, nil
}

func (r *Registry) encodePermutation(c constraint.Constraint) (*ConstraintDoc, error) {
	return &ConstraintDoc{Type: "Permutation", Parameters: c.Parameters()}, nil
}

//////
// Kernel encoders.
//////

func (r *Registry) encodeRBF(k kernel.Kernel) (*KernelDoc, error) {
	rbf := k.(kernel.RBF)

	return &KernelDoc{Type: "RBF", LengthScale: rbf.LengthScale}, nil
}

func (r *Registry) encodeMatern(k kernel.Kernel) (*KernelDoc, error) {
	m := k.(kernel.Matern)

	return &KernelDoc{Type: "Matern", Nu: m.Nu, LengthScale: m.LengthScale}, nil
}

func (r *Registry) encodeScale(k kernel.Kernel) (*KernelDoc, error) {
	s := k.(kernel.Scale)

	base, err := r.EncodeKernel(s.Base)
	if err != nil {
		return nil, err
	}

	return &KernelDoc{Type: "Scale", OutputScale: s.OutputScale, Base: base}, nil
}

func (r *Registry) encodeKernelSum(k kernel.Kernel) (*KernelDoc, error) {
	terms, err := r.encodeKernels(k.(kernel.Sum).Terms)
	if err != nil {
		return nil, err
	}

	return &KernelDoc{Type: "Sum", Terms: terms}, nil
}

func (r *Registry) encodeKernelProduct(k kernel.Kernel) (*KernelDoc, error) {
	factors, err := r.encodeKernels(k.(kernel.Product).Factors)
	if err != nil {
		return nil, err
	}

	return &KernelDoc{Type: "Product", Factors: factors}, nil
}

func (r *Registry) encodeKernels(kernels []kernel.Kernel) ([]KernelDoc, error) {
	docs := make([]KernelDoc, len(kernels))

	for i, k := range kernels {
		kd, err := r.EncodeKernel(k)
		if err != nil {
			return nil, fmt.Errorf("kernel %d: %w", i, err)
		}

		docs[i] = *kd
	}

	return docs, nil
}

//////
// Target encoders.
//////

func (r *Registry) encodeNumerical(t target.Target) (*TargetDoc, error) {
	n := t.(*target.Numerical)

	doc := &TargetDoc{Type: "Numerical", Name: n.Name(), Mode: n.Mode().String()}

	if n.Bounded() {
		lo, hi := n.Bounds()
		doc.Bounds = &BoundsDoc{Low: lo, High: hi}
		doc.Transform = n.TransformKind().String()
	}

	return doc, nil
}

func (r *Registry) encodeBinary(t target.Target) (*TargetDoc, error) {
	b := t.(*target.Binary)
	positive, negative := b.Choices()

	return &TargetDoc{
		Type:     "Binary",
		Name:     b.Name(),
		Positive: positive,
		Negative: negative,
	}, nil
}

//////
// Recommender encoders.
//////

func (r *Registry) encodeRandom(rec recommender.Recommender) (*RecommenderDoc, error) {
	return &RecommenderDoc{Type: "Random", Seed: rec.(*recommender.Random).Seed()}, nil
}

func (r *Registry) encodeFarthestPoint(recommender.Recommender) (*RecommenderDoc, error) {
	return &RecommenderDoc{Type: "FPS"}, nil
}

func (r *Registry) encodeSequentialGreedy(rec recommender.Recommender) (*RecommenderDoc, error) {
	opts := rec.(*recommender.Bayesian).Options()

	kd, err := r.EncodeKernel(opts.Kernel)
	if err != nil {
		return nil, err
	}

	return &RecommenderDoc{
		Type:        "SequentialGreedy",
		Seed:        opts.Seed,
		Kernel:      kd,
		Acquisition: opts.Acquisition,
		Beta:        opts.Beta,
		Xi:          opts.Xi,
	}, nil
}

//////
// Helper functions.
//////

// spaceState lists the measured and recommended rows in subspace row order.
func spaceState(space *searchspace.SearchSpace) (measured, recommended []searchspace.RowID) {
	for _, id := range space.Discrete().IDs() {
		if space.IsMeasured(id) {
			measured = append(measured, id)
		}

		if space.IsRecommended(id) {
			recommended = append(recommended, id)
		}
	}

	return measured, recommended
}
