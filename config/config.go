package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	baybe "github.com/AdrianSosic/BayBE-dev"
	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/recommender"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/serial"
	"github.com/AdrianSosic/BayBE-dev/target"
)

//////
// Const, vars, types.
//////

// validate checks the struct tags of decoded documents.
var validate = validator.New()

// components holds the domain objects decoded from a campaign document,
// ready for assembly into a search space and campaign.
type components struct {
	discrete    []param.Discrete
	continuous  []*param.Continuous
	constraints []constraint.Constraint
	objective   *target.Objective
	strategy    *recommender.Strategy
	build       searchspace.BuildOptions
}

//////
// Exported functionalities.
//////

// Validate parses and fully checks a campaign document without building the
// search space. The document may be JSON or YAML; unknown fields, unknown
// type tags, malformed declarations and references to undeclared parameters
// are all reported, independent problems aggregated into one error.
//
// Usage example:
//
//	raw, err := os.ReadFile("campaign.yaml")
//	if err != nil {
//	    return err
//	}
//
//	if err := config.Validate(raw); err != nil {
//	    return err
//	}
func Validate(raw []byte) error {
	doc, err := parse(raw)
	if err != nil {
		return err
	}

	_, err = assemble(doc)

	return err
}

// Build validates a campaign document and assembles the runnable campaign:
// parameters and constraints become the search space, the objective and
// strategy are attached as declared. Validation failures and search space
// construction failures are reported before any campaign exists.
func Build(raw []byte) (*baybe.Campaign, error) {
	doc, err := parse(raw)
	if err != nil {
		return nil, err
	}

	comps, err := assemble(doc)
	if err != nil {
		return nil, err
	}

	space, err := searchspace.FromParameters(
		comps.discrete, comps.continuous, comps.constraints, comps.build,
	)
	if err != nil {
		return nil, err
	}

	return baybe.NewCampaign(space, comps.objective, comps.strategy)
}

//////
// Helper functions.
//////

// parse decodes the raw document, selecting JSON or YAML by its first
// significant byte. Both decoders reject fields the schema does not declare.
func parse(raw []byte) (*serial.CampaignDoc, error) {
	doc := &serial.CampaignDoc{}

	if looksLikeJSON(raw) {
		if err := serial.DecodeJSON(raw, doc); err != nil {
			return nil, err
		}

		return doc, nil
	}

	if err := serial.DecodeYAML(raw, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// looksLikeJSON reports whether the document's first significant byte opens
// a JSON object.
func looksLikeJSON(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")

	return len(trimmed) > 0 && trimmed[0] == '{'
}

// assemble decodes every declaration of the document into its domain object.
// Shape problems surface first through the struct tags; the remaining
// declarations are then decoded independently so one bad entry does not hide
// the others.
func assemble(doc *serial.CampaignDoc) (*components, error) {
	if err := checkTags(doc); err != nil {
		return nil, err
	}

	reg := serial.NewRegistry()
	comps := &components{}

	var errs error

	discrete, continuous, err := reg.DecodeParameters(doc.Parameters)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("config: %w", err))
	}

	comps.discrete = discrete
	comps.continuous = continuous

	names := make(map[string]struct{}, len(discrete))

	for _, p := range discrete {
		names[p.Name()] = struct{}{}
	}

	for i := range doc.Constraints {
		c, err := reg.DecodeConstraint(&doc.Constraints[i])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("config: constraint %d: %w", i, err))

			continue
		}

		for _, name := range c.Parameters() {
			if _, ok := names[name]; !ok {
				errs = multierr.Append(errs, fmt.Errorf(
					"config: constraint %d: unknown parameter %q", i, name,
				))
			}
		}

		comps.constraints = append(comps.constraints, c)
	}

	objective, err := reg.DecodeObjective(doc.Objective)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("config: objective: %w", err))
	}

	comps.objective = objective

	if doc.Strategy != nil {
		strategy, err := reg.DecodeStrategy(doc.Strategy)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("config: strategy: %w", err))
		}

		comps.strategy = strategy
	}

	build, err := serial.DecodeBuildOptions(doc.Build)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("config: %w", err))
	}

	comps.build = build

	if errs != nil {
		return nil, errs
	}

	return comps, nil
}

// checkTags runs the struct-tag validation and aggregates the per-field
// failures.
func checkTags(doc *serial.CampaignDoc) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors

	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("config: %w", err)
	}

	var errs error

	for _, fe := range fieldErrors {
		errs = multierr.Append(errs, fmt.Errorf(
			"config: field %s failed rule %q", fe.Namespace(), fe.Tag(),
		))
	}

	return errs
}
