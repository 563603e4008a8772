package report_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eark-tools/ipcheck/internal/adapters/outbound/report"
	"github.com/eark-tools/ipcheck/internal/domain"
)

func sampleReport() *domain.ValidationReport {
	return &domain.ValidationReport{
		Package: domain.PackageInfo{Name: "pkg-1", Path: "/archives", Size: 42, SHA1: "abc123"},
		Structure: domain.StructureDetails{
			Path:   "/archives/pkg-1",
			Status: domain.StructureWellFormed,
		},
		Schema: &domain.SchemaResult{Valid: false, Errors: []domain.SchemaError{
			{Message: "element mets requires at least 1 metsHdr child(ren), found 0", Element: "mets/metsHdr", Severity: domain.SeverityError},
		}},
		Stages: domain.StageStates{
			Structure: domain.StageCompleted,
			Schema:    domain.StageCompleted,
			Profile:   domain.StageNotRun,
		},
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	structure := decoded["structure"].(map[string]any)
	assert.Equal(t, "well-formed", structure["status"])
	// Absent stages are absent, not vacuous passes.
	assert.NotContains(t, decoded, "profile")
	assert.Contains(t, decoded, "schema")
}

func TestWrite_XML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleReport(), report.FormatXML))

	// Output must be well-formed XML.
	var round struct {
		XMLName xml.Name `xml:"validationReport"`
		Package struct {
			Name string `xml:"name"`
		} `xml:"package"`
		Schema *struct {
			Valid bool `xml:"valid,attr"`
		} `xml:"schema"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &round))
	assert.Equal(t, "pkg-1", round.Package.Name)
	require.NotNil(t, round.Schema)
	assert.False(t, round.Schema.Valid)
	assert.NotContains(t, buf.String(), "<profile")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, report.Write(&buf, sampleReport(), report.Format("toml")))
}

func TestHardcopy(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	path, err := report.Hardcopy(sampleReport(), report.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("abc123", "ip_validator.pkg-1.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "well-formed")
}
