package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eark-tools/ipcheck/internal/domain"
	"github.com/eark-tools/ipcheck/internal/domain/schema"
)

const validMets = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" OBJID="uuid-4422c185" TYPE="Mixed">
  <mets:metsHdr CREATEDATE="2024-03-01T10:15:00Z">
    <mets:agent ROLE="CREATOR" TYPE="ORGANIZATION"><mets:name>Archive</mets:name></mets:agent>
  </mets:metsHdr>
  <mets:fileSec>
    <mets:fileGrp USE="Documentation"/>
  </mets:fileSec>
  <mets:structMap TYPE="PHYSICAL" LABEL="CSIP">
    <mets:div LABEL="uuid-4422c185"/>
  </mets:structMap>
</mets:mets>`

func newValidator(t *testing.T) *schema.Validator {
	t.Helper()
	v, err := schema.NewValidator(domain.DefaultMetsSchema())
	require.NoError(t, err)
	return v
}

func parse(t *testing.T, doc string) *xmlquery.Node {
	t.Helper()
	n, err := xmlquery.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return n
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "METS.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewValidator_RejectsMalformedDefinition(t *testing.T) {
	_, err := schema.NewValidator(nil)
	assert.Error(t, err)

	_, err = schema.NewValidator(&domain.SchemaDef{Root: "mets"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaRootUndeclared)
}

func TestValidate_ConformantDocument(t *testing.T) {
	result := newValidator(t).Validate(parse(t, validMets))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_MissingMetsHdr(t *testing.T) {
	doc := strings.NewReplacer(
		`<mets:metsHdr CREATEDATE="2024-03-01T10:15:00Z">`, "",
		`</mets:metsHdr>`, "",
		`<mets:agent ROLE="CREATOR" TYPE="ORGANIZATION"><mets:name>Archive</mets:name></mets:agent>`, "",
	).Replace(validMets)

	result := newValidator(t).Validate(parse(t, doc))

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "mets/metsHdr", result.Errors[0].Element)
	assert.Contains(t, result.Errors[0].Message, "metsHdr")
}

func TestValidate_MissingRequiredAttribute(t *testing.T) {
	doc := strings.Replace(validMets, ` OBJID="uuid-4422c185"`, "", 1)

	result := newValidator(t).Validate(parse(t, doc))

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "OBJID")
}

func TestValidate_DisallowedChild(t *testing.T) {
	doc := strings.Replace(validMets,
		"</mets:mets>",
		"<mets:bogus/></mets:mets>", 1)

	result := newValidator(t).Validate(parse(t, doc))

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "bogus")
}

func TestValidate_CardinalityViolation(t *testing.T) {
	doc := strings.Replace(validMets,
		`<mets:div LABEL="uuid-4422c185"/>`,
		`<mets:div/><mets:div/>`, 1)

	result := newValidator(t).Validate(parse(t, doc))

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "at most")
}

func TestValidate_WrongRootElement(t *testing.T) {
	result := newValidator(t).Validate(parse(t, `<record xmlns="urn:other"/>`))

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "expected root element mets")
}

func TestValidate_WrongNamespace(t *testing.T) {
	doc := strings.Replace(validMets, "http://www.loc.gov/METS/", "urn:not-mets", 1)

	result := newValidator(t).Validate(parse(t, doc))

	assert.False(t, result.Valid)
}

// A document that does not parse is a failed result with one synthetic
// error, never a fault propagated to the caller.
func TestValidateFile_MalformedXML(t *testing.T) {
	path := writeDoc(t, "<mets:mets xmlns:mets=\"http://www.loc.gov/METS/\">\n<unclosed")

	result, doc := newValidator(t).ValidateFile(path)

	assert.Nil(t, doc)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "not well-formed")
}

func TestValidateFile_UnreadableDocument(t *testing.T) {
	result, doc := newValidator(t).ValidateFile(filepath.Join(t.TempDir(), "absent.xml"))

	assert.Nil(t, doc)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
}

func TestValidateFile_Valid(t *testing.T) {
	result, doc := newValidator(t).ValidateFile(writeDoc(t, validMets))

	require.NotNil(t, doc)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}
