package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eark-tools/ipcheck/internal/domain"
)

func TestValidationReport_Conformant(t *testing.T) {
	wellFormed := domain.StructureDetails{Status: domain.StructureWellFormed}

	tests := []struct {
		name   string
		report domain.ValidationReport
		want   bool
	}{
		{
			name: "all stages passed",
			report: domain.ValidationReport{
				Structure: wellFormed,
				Schema:    &domain.SchemaResult{Valid: true},
				Profile:   &domain.ProfileResult{Valid: true},
			},
			want: true,
		},
		{
			name:   "structure failed, later stages absent",
			report: domain.ValidationReport{Structure: domain.StructureDetails{Status: domain.StructureNotWellFormed}},
			want:   false,
		},
		{
			name: "schema invalid, profile absent",
			report: domain.ValidationReport{
				Structure: wellFormed,
				Schema:    &domain.SchemaResult{Valid: false},
			},
			want: false,
		},
		{
			name: "profile invalid",
			report: domain.ValidationReport{
				Structure: wellFormed,
				Schema:    &domain.SchemaResult{Valid: true},
				Profile:   &domain.ProfileResult{Valid: false},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Conformant())
		})
	}
}

func TestStatusFromFindings(t *testing.T) {
	assert.Equal(t, domain.StructureWellFormed, domain.StatusFromFindings(nil))
	assert.Equal(t, domain.StructureWellFormed, domain.StatusFromFindings([]domain.Finding{
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityInfo},
	}))
	assert.Equal(t, domain.StructureNotWellFormed, domain.StatusFromFindings([]domain.Finding{
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityError},
	}))
}

func TestConfig_StructureSpecMerge(t *testing.T) {
	cfg := domain.Config{
		MetadataFile: "mets.xml",
		AllowedFiles: []string{"manifest.txt"},
		AllowedDirs:  []string{"extras"},
	}

	spec := cfg.StructureSpec()

	assert.Equal(t, "mets.xml", spec.MetadataFile)
	assert.True(t, spec.AllowedTopLevel("manifest.txt", domain.EntryFile))
	assert.True(t, spec.AllowedTopLevel("extras", domain.EntryDir))
	// CSIP defaults survive the merge.
	assert.True(t, spec.AllowedTopLevel("representations", domain.EntryDir))
	assert.False(t, spec.AllowedTopLevel("stray.bin", domain.EntryFile))
}
