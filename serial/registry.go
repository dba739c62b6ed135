package serial

import (
	"fmt"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/kernel"
	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/recommender"
	"github.com/AdrianSosic/BayBE-dev/target"
)

//////
// Const, vars, types.
//////

// parameterCodec is the encode/decode pair of one parameter variant.
type parameterCodec struct {
	encode func(param.Parameter) (*ParameterDoc, error)
	decode func(*ParameterDoc) (param.Parameter, error)
}

// constraintCodec is the encode/decode pair of one constraint variant.
type constraintCodec struct {
	encode func(constraint.Constraint) (*ConstraintDoc, error)
	decode func(*ConstraintDoc) (constraint.Constraint, error)
}

// kernelCodec is the encode/decode pair of one kernel variant.
type kernelCodec struct {
	encode func(kernel.Kernel) (*KernelDoc, error)
	decode func(*KernelDoc) (kernel.Kernel, error)
}

// targetCodec is the encode/decode pair of one target variant.
type targetCodec struct {
	encode func(target.Target) (*TargetDoc, error)
	decode func(*TargetDoc) (target.Target, error)
}

// recommenderCodec is the encode/decode pair of one recommender variant.
type recommenderCodec struct {
	encode func(recommender.Recommender) (*RecommenderDoc, error)
	decode func(*RecommenderDoc) (recommender.Recommender, error)
}

// Registry is the closed mapping from document type tags to their encode and
// decode functions, covering parameters, constraints, kernels, targets and
// recommenders. It is built once by NewRegistry and passed explicitly to
// every call that needs it; nothing is registered at runtime, so extending
// the document format means extending NewRegistry. A Registry holds no
// mutable state and is safe for concurrent use.
type Registry struct {
	parameters   map[string]parameterCodec
	constraints  map[string]constraintCodec
	kernels      map[string]kernelCodec
	targets      map[string]targetCodec
	recommenders map[string]recommenderCodec
}

//////
// Factory.
//////

// NewRegistry builds the registry over every serializable variant.
//
// Usage example:
//
//	reg := serial.NewRegistry()
//
//	doc, err := reg.EncodeParameter(solvent)
//	if err != nil {
//	    return err
//	}
//
//	data, err := serial.EncodeYAML(doc)
func NewRegistry() *Registry {
	r := &Registry{}

	r.parameters = map[string]parameterCodec{
		"Categorical":     {encode: r.encodeCategorical, decode: r.decodeCategorical},
		"NumericDiscrete": {encode: r.encodeNumericDiscrete, decode: r.decodeNumericDiscrete},
		"Substance":       {encode: r.encodeSubstance, decode: r.decodeSubstance},
		"Continuous":      {encode: r.encodeContinuous, decode: r.decodeContinuous},
	}

	r.constraints = map[string]constraintCodec{
		"Exclude":           {encode: r.encodeExclude, decode: r.decodeExclude},
		"Sum":               {encode: r.encodeSum, decode: r.decodeSum},
		"Product":           {encode: r.encodeProduct, decode: r.decodeProduct},
		"Cardinality":       {encode: r.encodeCardinality, decode: r.decodeCardinality},
		"Dependencies":      {encode: r.encodeDependencies, decode: r.decodeDependencies},
		"NoLabelDuplicates": {encode: r.encodeNoLabelDuplicates, decode: r.decodeNoLabelDuplicates},
		"Linked":            {encode: r.encodeLinked, decode: r.decodeLinked},
		"Permutation":       {encode: r.encodePermutation, decode: r.decodePermutation},
	}

	r.kernels = map[string]kernelCodec{
		"RBF":     {encode: r.encodeRBF, decode: r.decodeRBF},
		"Matern":  {encode: r.encodeMatern, decode: r.decodeMatern},
		"Scale":   {encode: r.encodeScale, decode: r.decodeScale},
		"Sum":     {encode: r.encodeKernelSum, decode: r.decodeKernelSum},
		"Product": {encode: r.encodeKernelProduct, decode: r.decodeKernelProduct},
	}

	r.targets = map[string]targetCodec{
		"Numerical": {encode: r.encodeNumerical, decode: r.decodeNumerical},
		"Binary":    {encode: r.encodeBinary, decode: r.decodeBinary},
	}

	r.recommenders = map[string]recommenderCodec{
		"Random":           {encode: r.encodeRandom, decode: r.decodeRandom},
		"FPS":              {encode: r.encodeFarthestPoint, decode: r.decodeFarthestPoint},
		"SequentialGreedy": {encode: r.encodeSequentialGreedy, decode: r.decodeSequentialGreedy},
	}

	return r
}

//////
// Methods.
//////

// EncodeParameter renders a parameter in its document form.
func (r *Registry) EncodeParameter(p param.Parameter) (*ParameterDoc, error) {
	tag, err := parameterTag(p)
	if err != nil {
		return nil, err
	}

	return r.parameters[tag].encode(p)
}

// DecodeParameter rebuilds a parameter from its document form.
func (r *Registry) DecodeParameter(doc *ParameterDoc) (param.Parameter, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	codec, ok := r.parameters[doc.Type]
	if !ok {
		return nil, &UnknownTagError{Kind: "parameter", Tag: doc.Type}
	}

	return codec.decode(doc)
}

// EncodeConstraint renders a constraint in its document form. Custom
// constraints fail with a *NotSerializableError since their validator
// function has no document form.
func (r *Registry) EncodeConstraint(c constraint.Constraint) (*ConstraintDoc, error) {
	tag, err := constraintTag(c)
	if err != nil {
		return nil, err
	}

	return r.constraints[tag].encode(c)
}

// DecodeConstraint rebuilds a constraint from its document form.
func (r *Registry) DecodeConstraint(doc *ConstraintDoc) (constraint.Constraint, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	codec, ok := r.constraints[doc.Type]
	if !ok {
		return nil, &UnknownTagError{Kind: "constraint", Tag: doc.Type}
	}

	return codec.decode(doc)
}

// EncodeKernel renders a kernel tree in its document form.
func (r *Registry) EncodeKernel(k kernel.Kernel) (*KernelDoc, error) {
	tag, err := kernelTag(k)
	if err != nil {
		return nil, err
	}

	return r.kernels[tag].encode(k)
}

// DecodeKernel rebuilds a kernel tree from its document form. The kernel is
// not validated here; compiling it reports bad hyperparameters.
func (r *Registry) DecodeKernel(doc *KernelDoc) (kernel.Kernel, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	codec, ok := r.kernels[doc.Type]
	if !ok {
		return nil, &UnknownTagError{Kind: "kernel", Tag: doc.Type}
	}

	return codec.decode(doc)
}

// EncodeTarget renders a target in its document form.
func (r *Registry) EncodeTarget(t target.Target) (*TargetDoc, error) {
	tag, err := targetTag(t)
	if err != nil {
		return nil, err
	}

	return r.targets[tag].encode(t)
}

// DecodeTarget rebuilds a target from its document form.
func (r *Registry) DecodeTarget(doc *TargetDoc) (target.Target, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	codec, ok := r.targets[doc.Type]
	if !ok {
		return nil, &UnknownTagError{Kind: "target", Tag: doc.Type}
	}

	return codec.decode(doc)
}

// EncodeRecommender renders a recommender in its document form.
func (r *Registry) EncodeRecommender(rec recommender.Recommender) (*RecommenderDoc, error) {
	tag, err := recommenderTag(rec)
	if err != nil {
		return nil, err
	}

	return r.recommenders[tag].encode(rec)
}

// DecodeRecommender rebuilds a recommender from its document form.
func (r *Registry) DecodeRecommender(doc *RecommenderDoc) (recommender.Recommender, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	codec, ok := r.recommenders[doc.Type]
	if !ok {
		return nil, &UnknownTagError{Kind: "recommender", Tag: doc.Type}
	}

	return codec.decode(doc)
}

//////
// Helper functions.
//////

// parameterTag resolves a parameter's concrete type to its document tag.
func parameterTag(p param.Parameter) (string, error) {
	switch p.(type) {
	case *param.Categorical:
		return "Categorical", nil
	case *param.NumericDiscrete:
		return "NumericDiscrete", nil
	case *param.Substance:
		return "Substance", nil
	case *param.Continuous:
		return "Continuous", nil
	case nil:
		return "", &UnknownTagError{Kind: "parameter", Tag: "<nil>"}
	default:
		return "", &UnknownTagError{Kind: "parameter", Tag: fmt.Sprintf("%T", p)}
	}
}

// constraintTag resolves a constraint's concrete type to its document tag.
func constraintTag(c constraint.Constraint) (string, error) {
	switch t := c.(type) {
	case *constraint.Exclude:
		return "Exclude", nil
	case *constraint.Sum:
		return "Sum", nil
	case *constraint.Product:
		return "Product", nil
	case *constraint.Cardinality:
		return "Cardinality", nil
	case *constraint.Dependencies:
		return "Dependencies", nil
	case *constraint.NoLabelDuplicates:
		return "NoLabelDuplicates", nil
	case *constraint.Linked:
		return "Linked", nil
	case *constraint.Permutation:
		return "Permutation", nil
	case *constraint.Custom:
		return "", &NotSerializableError{Kind: "constraint", Name: t.Name()}
	case nil:
		return "", &UnknownTagError{Kind: "constraint", Tag: "<nil>"}
	default:
		return "", &UnknownTagError{Kind: "constraint", Tag: fmt.Sprintf("%T", c)}
	}
}

// kernelTag resolves a kernel's concrete type to its document tag.
func kernelTag(k kernel.Kernel) (string, error) {
	switch k.(type) {
	case kernel.RBF:
		return "RBF", nil
	case kernel.Matern:
		return "Matern", nil
	case kernel.Scale:
		return "Scale", nil
	case kernel.Sum:
		return "Sum", nil
	case kernel.Product:
		return "Product", nil
	case nil:
		return "", &UnknownTagError{Kind: "kernel", Tag: "<nil>"}
	default:
		return "", &UnknownTagError{Kind: "kernel", Tag: fmt.Sprintf("%T", k)}
	}
}

// targetTag resolves a target's concrete type to its document tag.
func targetTag(t target.Target) (string, error) {
	switch t.(type) {
	case *target.Numerical:
		return "Numerical", nil
	case *target.Binary:
		return "Binary", nil
	case nil:
		return "", &UnknownTagError{Kind: "target", Tag: "<nil>"}
	default:
		return "", &UnknownTagError{Kind: "target", Tag: fmt.Sprintf("%T", t)}
	}
}

// recommenderTag resolves a recommender's concrete type to its document tag.
// The tags match the recommenders' Name methods.
func recommenderTag(rec recommender.Recommender) (string, error) {
	switch rec.(type) {
	case *recommender.Random:
		return "Random", nil
	case *recommender.FarthestPoint:
		return "FPS", nil
	case *recommender.Bayesian:
		return "SequentialGreedy", nil
	case nil:
		return "", &UnknownTagError{Kind: "recommender", Tag: "<nil>"}
	default:
		return "", &UnknownTagError{Kind: "recommender", Tag: fmt.Sprintf("%T", rec)}
	}
}
