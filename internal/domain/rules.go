package domain

import "fmt"

// Severity classes shared by structural findings, schema errors, and rules.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Outcome classifies one rule's evaluation against one document.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
	// OutcomeNotApplicable means the rule's context was not present in the
	// document. Distinct from a failure.
	OutcomeNotApplicable Outcome = "not-applicable"
)

// Rule is one schematron-style assertion: within every node matched by the
// Context XPath expression, the Test expression must hold.
type Rule struct {
	ID       string `yaml:"id"       json:"id"`
	Name     string `yaml:"name"     json:"name"`
	Context  string `yaml:"context"  json:"context"`
	Test     string `yaml:"test"     json:"test"`
	Message  string `yaml:"message,omitempty" json:"message,omitempty"`
	Severity string `yaml:"severity" json:"severity"`
}

// RuleOutcome is the evaluation result for a single rule in a single run.
type RuleOutcome struct {
	RuleID  string  `json:"rule_id"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message,omitempty"`
}

// ProfileResult is the ordered sequence of rule outcomes for one validation
// run. Valid is true iff no error-severity rule failed.
type ProfileResult struct {
	Profile  string        `json:"profile"`
	Valid    bool          `json:"valid"`
	Outcomes []RuleOutcome `json:"outcomes"`
}

// Profile is a named, ordered, immutable collection of rules plus the
// namespace bindings their XPath expressions rely on. Construct once with
// NewProfile and share read-only across validation runs.
type Profile struct {
	name       string
	namespaces map[string]string
	rules      []Rule
	byID       map[string]int
}

// NewProfile builds a profile from an ordered rule list. Rules with empty
// or duplicate IDs, missing expressions, or unknown severities are corrupt
// definitions and rejected up front.
func NewProfile(name string, namespaces map[string]string, rules []Rule) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile: %w", ErrProfileUnnamed)
	}
	byID := make(map[string]int, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("profile %s: rule %d: %w", name, i, ErrRuleNoID)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("profile %s: rule %s: %w", name, r.ID, ErrRuleDuplicateID)
		}
		if r.Context == "" || r.Test == "" {
			return nil, fmt.Errorf("profile %s: rule %s: %w", name, r.ID, ErrRuleNoExpression)
		}
		switch r.Severity {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			return nil, fmt.Errorf("profile %s: rule %s: %w: %q", name, r.ID, ErrRuleBadSeverity, r.Severity)
		}
		byID[r.ID] = i
	}

	ns := make(map[string]string, len(namespaces))
	for k, v := range namespaces {
		ns[k] = v
	}
	return &Profile{
		name:       name,
		namespaces: ns,
		rules:      append([]Rule(nil), rules...),
		byID:       byID,
	}, nil
}

// Name returns the profile's name.
func (p *Profile) Name() string { return p.name }

// Len returns the number of rules in the profile.
func (p *Profile) Len() int { return len(p.rules) }

// Namespaces returns a copy of the profile's namespace bindings.
func (p *Profile) Namespaces() map[string]string {
	out := make(map[string]string, len(p.namespaces))
	for k, v := range p.namespaces {
		out[k] = v
	}
	return out
}

// Rules returns a copy of the ordered rule list.
func (p *Profile) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// RuleIDs returns the rule identifiers in profile order. The catalog is
// stable and independent of any evaluation run.
func (p *Profile) RuleIDs() []string {
	ids := make([]string, len(p.rules))
	for i, r := range p.rules {
		ids[i] = r.ID
	}
	return ids
}

// RuleByID looks a rule up in the catalog.
func (p *Profile) RuleByID(id string) (Rule, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Rule{}, false
	}
	return p.rules[i], true
}

// DefaultCSIPProfile returns the built-in E-ARK CSIP rule profile evaluated
// against a package's METS document.
func DefaultCSIPProfile() *Profile {
	p, err := NewProfile("E-ARK CSIP", map[string]string{"mets": MetsNamespace}, []Rule{
		{
			ID:       "CSIP1",
			Name:     "Package identifier",
			Context:  "/mets:mets",
			Test:     "@OBJID",
			Message:  "the mets root element must carry an OBJID attribute",
			Severity: SeverityError,
		},
		{
			ID:       "CSIP2",
			Name:     "Content category",
			Context:  "/mets:mets",
			Test:     "string-length(@TYPE) > 0",
			Message:  "the mets root element must declare a TYPE attribute",
			Severity: SeverityError,
		},
		{
			ID:       "CSIP7",
			Name:     "Header creation date",
			Context:  "/mets:mets/mets:metsHdr",
			Test:     "@CREATEDATE",
			Message:  "metsHdr must record a CREATEDATE",
			Severity: SeverityError,
		},
		{
			ID:       "CSIP9",
			Name:     "Archival creator agent",
			Context:  "/mets:mets/mets:metsHdr",
			Test:     "mets:agent[@ROLE='CREATOR']",
			Message:  "metsHdr should name a CREATOR agent",
			Severity: SeverityWarning,
		},
		{
			ID:       "CSIP58",
			Name:     "File section",
			Context:  "/mets:mets",
			Test:     "mets:fileSec",
			Message:  "the package should describe its content files in a fileSec",
			Severity: SeverityWarning,
		},
		{
			ID:       "CSIP59",
			Name:     "File group use",
			Context:  "/mets:mets/mets:fileSec/mets:fileGrp",
			Test:     "@USE",
			Message:  "every fileGrp must declare its USE",
			Severity: SeverityError,
		},
		{
			ID:       "CSIP80",
			Name:     "Structural map",
			Context:  "/mets:mets",
			Test:     "mets:structMap[@LABEL='CSIP']",
			Message:  "the package must provide a structMap labelled CSIP",
			Severity: SeverityError,
		},
		{
			ID:       "CSIP117",
			Name:     "Header presence",
			Context:  "/mets:mets",
			Test:     "mets:metsHdr",
			Message:  "the package must provide a metsHdr element",
			Severity: SeverityError,
		},
	})
	if err != nil {
		// The built-in profile is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return p
}
