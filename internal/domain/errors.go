package domain

import "errors"

// Environment faults: the validator itself cannot proceed. These are kept
// separate from package defects, which are reported as findings instead of
// errors.
var (
	ErrSchemaNoRoot         = errors.New("schema definition declares no root element")
	ErrSchemaRootUndeclared = errors.New("schema root element has no declaration")

	ErrProfileUnnamed   = errors.New("profile has no name")
	ErrRuleNoID         = errors.New("rule has no identifier")
	ErrRuleDuplicateID  = errors.New("duplicate rule identifier")
	ErrRuleNoExpression = errors.New("rule is missing a context or test expression")
	ErrRuleBadSeverity  = errors.New("unknown rule severity")
)
