package render

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-custdoc/pkg/pointer"
)

// DefaultVariant is used when the nationality falls outside the allow-list.
const DefaultVariant = "SG"

// allowedVariants is the fixed set of countries with their own template
// variant.
var allowedVariants = map[string]struct{}{
	"SG": {},
	"MY": {},
	"CN": {},
	"IN": {},
}

// Selector picks a template variant for country-dependent documents. The
// default rule maps the record's nationality through the allow-list; a
// rendering config may override it with an expr expression evaluated against
// {nationality, country, customer}.
type Selector struct {
	prefix string
	rule   *vm.Program
}

// NewSelector compiles the optional variant rule. A rule that does not
// compile is a configuration error and fails the run up front.
func NewSelector(prefix, rule string) (*Selector, error) {
	selector := &Selector{prefix: prefix}
	if trimmed := strings.TrimSpace(rule); trimmed != "" {
		program, err := expr.Compile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("render: compile variant rule: %w", err)
		}
		selector.rule = program
	}
	return selector, nil
}

// Variant returns the variant identifier for one record. Rule evaluation
// failures degrade to the allow-list: variant selection is never fatal.
func (s *Selector) Variant(fields, customer map[string]any) string {
	nationality := textValue(fields["nationality"])
	if nationality == "" {
		nationality = textValue(fields["country"])
	}
	country := textValue(fields["country"])
	if nationality == "" || country == "" {
		if resolved, err := pointer.Resolve(customer, "/demographics/country"); err == nil {
			if fallback := textValue(resolved); fallback != "" {
				if nationality == "" {
					nationality = fallback
				}
				if country == "" {
					country = fallback
				}
			}
		}
	}

	if s.rule != nil {
		env := map[string]any{
			"nationality": nationality,
			"country":     country,
			"customer":    customer,
		}
		if out, err := vm.Run(s.rule, env); err == nil {
			if variant := textValue(out); variant != "" {
				return variant
			}
		}
	}

	if _, ok := allowedVariants[nationality]; ok {
		return nationality
	}
	return DefaultVariant
}

// TemplateName combines the fixed prefix with a variant identifier, e.g.
// passport_SG.html.
func (s *Selector) TemplateName(variant string) string {
	return s.prefix + variant + ".html"
}

func textValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
