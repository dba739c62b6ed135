package constraint

//////
// Const, vars, types.
//////

// NoLabelDuplicates keeps rows where the referenced parameters all take
// pairwise distinct values, e.g. two solvent slots that must not pick the
// same substance.
type NoLabelDuplicates struct {
	parameters []string
	name       string
}

// Linked keeps rows where the referenced parameters all take the same value,
// mirroring one choice across several slots.
type Linked struct {
	parameters []string
	name       string
}

//////
// Factory.
//////

// NewNoLabelDuplicates creates a pairwise-distinctness constraint over at
// least two parameters.
func NewNoLabelDuplicates(parameters ...string) (*NoLabelDuplicates, error) {
	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	if len(parameters) < 2 {
		return nil, ErrTooFewParameters
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &NoLabelDuplicates{
		parameters: names,
		name:       describe("no-label-duplicates", names),
	}, nil
}

// NewLinked creates an all-equal constraint over at least two parameters.
func NewLinked(parameters ...string) (*Linked, error) {
	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	if len(parameters) < 2 {
		return nil, ErrTooFewParameters
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &Linked{
		parameters: names,
		name:       describe("linked", names),
	}, nil
}

//////
// Methods.
//////

// Name implements Constraint.
func (c *NoLabelDuplicates) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *NoLabelDuplicates) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// IsValid implements RowPredicate.
func (c *NoLabelDuplicates) IsValid(r Row) (bool, error) {
	seen := make(map[string]struct{}, len(c.parameters))

	for _, p := range c.parameters {
		key := r[p].Canonical()

		if _, ok := seen[key]; ok {
			return false, nil
		}

		seen[key] = struct{}{}
	}

	return true, nil
}

// Name implements Constraint.
func (c *Linked) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Linked) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// IsValid implements RowPredicate.
func (c *Linked) IsValid(r Row) (bool, error) {
	first := r[c.parameters[0]]

	for _, p := range c.parameters[1:] {
		if r[p] != first {
			return false, nil
		}
	}

	return true, nil
}
