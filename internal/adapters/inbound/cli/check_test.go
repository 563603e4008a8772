package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eark-tools/ipcheck/internal/adapters/inbound/cli"
)

const conformantMets = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" OBJID="uuid-0001" TYPE="Mixed">
  <mets:metsHdr CREATEDATE="2024-03-01T10:15:00Z">
    <mets:agent ROLE="CREATOR" TYPE="ORGANIZATION"><mets:name>Archive</mets:name></mets:agent>
  </mets:metsHdr>
  <mets:fileSec>
    <mets:fileGrp USE="Documentation"/>
  </mets:fileSec>
  <mets:structMap TYPE="PHYSICAL" LABEL="CSIP">
    <mets:div LABEL="uuid-0001"/>
  </mets:structMap>
</mets:mets>`

func writePackage(t *testing.T, mets string) string {
	t.Helper()
	dir := t.TempDir()
	if mets != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "METS.xml"), []byte(mets), 0644))
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCmd_ConformantPackage(t *testing.T) {
	dir := writePackage(t, conformantMets)

	out, err := runCommand(t, "check", dir)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	structure := decoded["structure"].(map[string]any)
	assert.Equal(t, "well-formed", structure["status"])
}

func TestCheckCmd_FailingPackageExitsNonZero(t *testing.T) {
	dir := writePackage(t, "")

	out, err := runCommand(t, "check", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
	assert.Contains(t, out, "not-well-formed")
}

func TestCheckCmd_XMLOutput(t *testing.T) {
	dir := writePackage(t, conformantMets)

	out, err := runCommand(t, "check", "--xml", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "<validationReport>")
}

func TestCheckCmd_InvalidExtensionSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.rar")
	require.NoError(t, os.WriteFile(path, []byte("rar"), 0644))

	out, err := runCommand(t, "check", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckCmd_MissingPackage(t *testing.T) {
	_, err := runCommand(t, "check", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestRulesCmd_ListsCatalog(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "E-ARK CSIP")
	assert.Contains(t, out, "CSIP1")
	assert.Contains(t, out, "CSIP117")
}

func TestRulesCmd_JSON(t *testing.T) {
	out, err := runCommand(t, "rules", "--json")
	require.NoError(t, err)

	var decoded struct {
		Name  string `json:"name"`
		Rules []struct {
			ID string `json:"id"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "E-ARK CSIP", decoded.Name)
	assert.NotEmpty(t, decoded.Rules)
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ipcheck")
}
