package schema

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// Validator checks an XML document against an in-memory schema definition.
// It is immutable after construction and safe for concurrent use.
type Validator struct {
	def *domain.SchemaDef
}

// NewValidator builds a validator from a schema definition. A malformed
// definition is rejected here, before any package is touched.
func NewValidator(def *domain.SchemaDef) (*Validator, error) {
	if def == nil {
		return nil, fmt.Errorf("schema: %w", domain.ErrSchemaNoRoot)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Validator{def: def}, nil
}

// ValidateFile parses the document at path and validates it against the
// schema. A document that cannot be read or parsed yields a failed result
// carrying a single synthetic parse error; it is never a fatal fault. The
// parsed DOM is returned for downstream rule evaluation, nil when parsing
// failed.
func (v *Validator) ValidateFile(path string) (domain.SchemaResult, *xmlquery.Node) {
	f, err := os.Open(path)
	if err != nil {
		return parseFailure(fmt.Sprintf("cannot read document: %v", err)), nil
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return parseFailure(fmt.Sprintf("document is not well-formed XML: %v", err)), nil
	}
	return v.Validate(doc), doc
}

// Validate checks an already-parsed document against the schema.
func (v *Validator) Validate(doc *xmlquery.Node) domain.SchemaResult {
	var errs []domain.SchemaError

	root := documentElement(doc)
	if root == nil {
		return parseFailure("document has no root element")
	}

	if root.Data != v.def.Root {
		errs = append(errs, domain.SchemaError{
			Message:  fmt.Sprintf("expected root element %s, found %s", v.def.Root, root.Data),
			Element:  root.Data,
			Severity: domain.SeverityError,
		})
	} else if v.def.Namespace != "" && root.NamespaceURI != v.def.Namespace {
		errs = append(errs, domain.SchemaError{
			Message:  fmt.Sprintf("root element %s is not in namespace %s", root.Data, v.def.Namespace),
			Element:  root.Data,
			Severity: domain.SeverityError,
		})
	}

	errs = append(errs, v.checkElement(root, root.Data)...)

	return domain.SchemaResult{
		Valid:  !hasError(errs),
		Errors: errs,
	}
}

// checkElement validates one element against its declaration, then recurses
// into declared children. Elements without a declaration are left alone.
func (v *Validator) checkElement(n *xmlquery.Node, loc string) []domain.SchemaError {
	decl, ok := v.def.Elements[n.Data]
	if !ok {
		return nil
	}

	var errs []domain.SchemaError

	for _, attr := range decl.Attributes {
		if attr.Required && !hasAttr(n, attr.Name) {
			errs = append(errs, domain.SchemaError{
				Message:  fmt.Sprintf("element %s is missing required attribute %s", loc, attr.Name),
				Element:  loc,
				Severity: domain.SeverityError,
			})
		}
	}

	counts := make(map[string]int)
	declared := make(map[string]bool, len(decl.Children))
	for _, c := range decl.Children {
		declared[c.Name] = true
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		counts[child.Data]++
		if decl.Closed && !declared[child.Data] {
			errs = append(errs, domain.SchemaError{
				Message:  fmt.Sprintf("element %s is not allowed inside %s", child.Data, loc),
				Element:  loc + "/" + child.Data,
				Severity: domain.SeverityError,
			})
		}
	}

	for _, c := range decl.Children {
		got := counts[c.Name]
		if got < c.MinOccurs {
			errs = append(errs, domain.SchemaError{
				Message:  fmt.Sprintf("element %s requires at least %d %s child(ren), found %d", loc, c.MinOccurs, c.Name, got),
				Element:  loc + "/" + c.Name,
				Severity: domain.SeverityError,
			})
		}
		if c.MaxOccurs >= 0 && got > c.MaxOccurs {
			errs = append(errs, domain.SchemaError{
				Message:  fmt.Sprintf("element %s allows at most %d %s child(ren), found %d", loc, c.MaxOccurs, c.Name, got),
				Element:  loc + "/" + c.Name,
				Severity: domain.SeverityError,
			})
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		errs = append(errs, v.checkElement(child, loc+"/"+child.Data)...)
	}

	return errs
}

var lineRE = regexp.MustCompile(`line (\d+)`)

// parseFailure builds the single synthetic error result for an unparseable
// document, pulling a line number out of the parser message when one is
// there.
func parseFailure(msg string) domain.SchemaResult {
	e := domain.SchemaError{
		Message:  msg,
		Severity: domain.SeverityError,
	}
	if m := lineRE.FindStringSubmatch(msg); m != nil {
		if line, err := strconv.Atoi(m[1]); err == nil {
			e.Line = line
		}
	}
	return domain.SchemaResult{Valid: false, Errors: []domain.SchemaError{e}}
}

func documentElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

func hasAttr(n *xmlquery.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

func hasError(errs []domain.SchemaError) bool {
	for _, e := range errs {
		if e.Severity == domain.SeverityError {
			return true
		}
	}
	return false
}
