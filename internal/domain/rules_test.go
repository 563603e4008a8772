package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eark-tools/ipcheck/internal/domain"
)

func TestNewProfile_RejectsCorruptDefinitions(t *testing.T) {
	valid := domain.Rule{
		ID: "R1", Name: "rule", Context: "/x", Test: "@a", Severity: domain.SeverityError,
	}

	tests := []struct {
		name    string
		pname   string
		rules   []domain.Rule
		wantErr error
	}{
		{
			name:    "unnamed profile",
			pname:   "",
			rules:   []domain.Rule{valid},
			wantErr: domain.ErrProfileUnnamed,
		},
		{
			name:    "rule without ID",
			pname:   "p",
			rules:   []domain.Rule{{Context: "/x", Test: "@a", Severity: domain.SeverityError}},
			wantErr: domain.ErrRuleNoID,
		},
		{
			name:    "duplicate rule ID",
			pname:   "p",
			rules:   []domain.Rule{valid, valid},
			wantErr: domain.ErrRuleDuplicateID,
		},
		{
			name:    "missing test expression",
			pname:   "p",
			rules:   []domain.Rule{{ID: "R1", Context: "/x", Severity: domain.SeverityError}},
			wantErr: domain.ErrRuleNoExpression,
		},
		{
			name:    "unknown severity",
			pname:   "p",
			rules:   []domain.Rule{{ID: "R1", Context: "/x", Test: "@a", Severity: "fatal"}},
			wantErr: domain.ErrRuleBadSeverity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewProfile(tt.pname, nil, tt.rules)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProfile_CatalogIsOrderedAndStable(t *testing.T) {
	profile, err := domain.NewProfile("p", nil, []domain.Rule{
		{ID: "B", Name: "second", Context: "/x", Test: "@a", Severity: domain.SeverityError},
		{ID: "A", Name: "first", Context: "/x", Test: "@a", Severity: domain.SeverityWarning},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, profile.RuleIDs())
	assert.Equal(t, 2, profile.Len())

	rule, ok := profile.RuleByID("A")
	require.True(t, ok)
	assert.Equal(t, "first", rule.Name)

	_, ok = profile.RuleByID("Z")
	assert.False(t, ok)
}

// Mutating the slices a profile hands out must not reach its internal
// state.
func TestProfile_AccessorsCopy(t *testing.T) {
	profile, err := domain.NewProfile("p", map[string]string{"mets": domain.MetsNamespace}, []domain.Rule{
		{ID: "R1", Name: "rule", Context: "/x", Test: "@a", Severity: domain.SeverityError},
	})
	require.NoError(t, err)

	rules := profile.Rules()
	rules[0].ID = "mutated"
	ns := profile.Namespaces()
	ns["mets"] = "urn:mutated"

	fresh, _ := profile.RuleByID("R1")
	assert.Equal(t, "R1", fresh.ID)
	assert.Equal(t, domain.MetsNamespace, profile.Namespaces()["mets"])
}

func TestDefaultCSIPProfile(t *testing.T) {
	profile := domain.DefaultCSIPProfile()

	assert.Equal(t, "E-ARK CSIP", profile.Name())
	assert.NotZero(t, profile.Len())
	assert.Contains(t, profile.RuleIDs(), "CSIP1")
	assert.Contains(t, profile.RuleIDs(), "CSIP117")
}
