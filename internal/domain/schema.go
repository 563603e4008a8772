package domain

// MetsNamespace is the XML namespace of the METS metadata format.
const MetsNamespace = "http://www.loc.gov/METS/"

// SchemaError is one schema violation with a best-effort location in the
// source document. Line and Column are zero when the parser could not
// attribute the violation to a position.
type SchemaError struct {
	Message  string `json:"message"`
	Element  string `json:"element,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
}

// SchemaResult is the schema validator's output for one run. Valid is true
// iff Errors contains no error-severity entries. A document that failed to
// parse yields Valid=false with exactly one synthetic parse error.
type SchemaResult struct {
	Valid  bool          `json:"valid"`
	Errors []SchemaError `json:"errors"`
}

// ChildDecl declares one permitted child element with its cardinality.
// MaxOccurs of -1 means unbounded.
type ChildDecl struct {
	Name      string `yaml:"name"`
	MinOccurs int    `yaml:"min_occurs"`
	MaxOccurs int    `yaml:"max_occurs"`
}

// AttributeDecl declares one attribute on an element.
type AttributeDecl struct {
	Name     string `yaml:"name"`
	Required bool   `yaml:"required"`
}

// ElementDecl declares the permitted content of one element, keyed by local
// name in the schema's element map. Children not listed are rejected only
// when Closed is set.
type ElementDecl struct {
	Attributes []AttributeDecl `yaml:"attributes,omitempty"`
	Children   []ChildDecl     `yaml:"children,omitempty"`
	Closed     bool            `yaml:"closed,omitempty"`
}

// SchemaDef is an in-memory XML schema definition: an expected root element
// within a namespace, plus per-element content declarations. It is loaded
// once and shared read-only across validation runs.
type SchemaDef struct {
	Namespace string                 `yaml:"namespace"`
	Root      string                 `yaml:"root"`
	Elements  map[string]ElementDecl `yaml:"elements"`
}

// Validate reports whether the schema definition itself is usable. A
// malformed definition is an environment fault, not a package defect.
func (s *SchemaDef) Validate() error {
	if s.Root == "" {
		return ErrSchemaNoRoot
	}
	if _, ok := s.Elements[s.Root]; !ok {
		return ErrSchemaRootUndeclared
	}
	return nil
}

// DefaultMetsSchema returns the built-in METS schema definition used for
// E-ARK packages: a mets root carrying OBJID/TYPE, with a mandatory
// metsHdr and structMap and an optional fileSec.
func DefaultMetsSchema() *SchemaDef {
	return &SchemaDef{
		Namespace: MetsNamespace,
		Root:      "mets",
		Elements: map[string]ElementDecl{
			"mets": {
				Attributes: []AttributeDecl{
					{Name: "OBJID", Required: true},
					{Name: "TYPE", Required: false},
				},
				Children: []ChildDecl{
					{Name: "metsHdr", MinOccurs: 1, MaxOccurs: 1},
					{Name: "dmdSec", MinOccurs: 0, MaxOccurs: -1},
					{Name: "amdSec", MinOccurs: 0, MaxOccurs: -1},
					{Name: "fileSec", MinOccurs: 0, MaxOccurs: 1},
					{Name: "structMap", MinOccurs: 1, MaxOccurs: -1},
				},
				Closed: true,
			},
			"metsHdr": {
				Attributes: []AttributeDecl{
					{Name: "CREATEDATE", Required: true},
				},
				Children: []ChildDecl{
					{Name: "agent", MinOccurs: 0, MaxOccurs: -1},
					{Name: "altRecordID", MinOccurs: 0, MaxOccurs: -1},
					{Name: "metsDocumentID", MinOccurs: 0, MaxOccurs: 1},
				},
			},
			"fileSec": {
				Children: []ChildDecl{
					{Name: "fileGrp", MinOccurs: 1, MaxOccurs: -1},
				},
				Closed: true,
			},
			"structMap": {
				Children: []ChildDecl{
					{Name: "div", MinOccurs: 1, MaxOccurs: 1},
				},
				Closed: true,
			},
		},
	}
}
