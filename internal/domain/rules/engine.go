package rules

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// Engine evaluates a rule profile against parsed metadata documents. The
// profile's XPath expressions are compiled once at construction; the engine
// is immutable afterwards and safe to share across concurrent runs.
type Engine struct {
	profile  *domain.Profile
	compiled []compiledRule
}

type compiledRule struct {
	rule    domain.Rule
	context *xpath.Expr
	test    *xpath.Expr
}

// NewEngine compiles a profile's rules. A rule whose expressions do not
// compile is a corrupt definition and rejected here, before any package is
// validated.
func NewEngine(profile *domain.Profile) (*Engine, error) {
	if profile == nil {
		return nil, fmt.Errorf("rules: %w", domain.ErrProfileUnnamed)
	}
	ns := profile.Namespaces()
	compiled := make([]compiledRule, 0, profile.Len())
	for _, r := range profile.Rules() {
		ctx, err := xpath.CompileWithNS(r.Context, ns)
		if err != nil {
			return nil, fmt.Errorf("rules: %s: compiling context %q: %w", r.ID, r.Context, err)
		}
		test, err := xpath.CompileWithNS(r.Test, ns)
		if err != nil {
			return nil, fmt.Errorf("rules: %s: compiling test %q: %w", r.ID, r.Test, err)
		}
		compiled = append(compiled, compiledRule{rule: r, context: ctx, test: test})
	}
	return &Engine{profile: profile, compiled: compiled}, nil
}

// Profile returns the engine's rule catalog, queryable independent of any
// evaluation run.
func (e *Engine) Profile() *domain.Profile { return e.profile }

// Evaluate runs every rule in profile order against the document. A rule
// whose context matches nothing is not-applicable; a rule whose evaluation
// faults is recorded as a failed outcome with a diagnostic rather than
// aborting the remaining rules.
func (e *Engine) Evaluate(doc *xmlquery.Node) domain.ProfileResult {
	outcomes := make([]domain.RuleOutcome, 0, len(e.compiled))
	valid := true

	for _, cr := range e.compiled {
		outcome := e.evaluateRule(cr, doc)
		if outcome.Outcome == domain.OutcomeFail && cr.rule.Severity == domain.SeverityError {
			valid = false
		}
		outcomes = append(outcomes, outcome)
	}

	return domain.ProfileResult{
		Profile:  e.profile.Name(),
		Valid:    valid,
		Outcomes: outcomes,
	}
}

func (e *Engine) evaluateRule(cr compiledRule, doc *xmlquery.Node) (outcome domain.RuleOutcome) {
	outcome = domain.RuleOutcome{RuleID: cr.rule.ID, Outcome: domain.OutcomePass}

	// One faulting rule must not take the rest of the run down with it.
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.RuleOutcome{
				RuleID:  cr.rule.ID,
				Outcome: domain.OutcomeFail,
				Message: fmt.Sprintf("rule evaluation fault: %v", r),
			}
		}
	}()

	ctxNodes := xmlquery.QuerySelectorAll(doc, cr.context)
	if len(ctxNodes) == 0 {
		outcome.Outcome = domain.OutcomeNotApplicable
		return outcome
	}

	for _, n := range ctxNodes {
		if truthy(cr.test.Evaluate(xmlquery.CreateXPathNavigator(n))) {
			continue
		}
		outcome.Outcome = domain.OutcomeFail
		outcome.Message = cr.rule.Message
		if outcome.Message == "" {
			outcome.Message = fmt.Sprintf("assertion %q does not hold", cr.rule.Test)
		}
		return outcome
	}
	return outcome
}

// truthy converts an XPath evaluation result to schematron assert
// semantics: node-sets are true when non-empty, strings when non-empty,
// numbers when non-zero.
func truthy(v any) bool {
	switch r := v.(type) {
	case bool:
		return r
	case string:
		return r != ""
	case float64:
		return r != 0
	case *xpath.NodeIterator:
		return r.MoveNext()
	default:
		return v != nil
	}
}
