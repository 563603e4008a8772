package report

import (
	"encoding/xml"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// encoding/xml cannot marshal maps, so the XML shape is an explicit mirror
// of the report model.

type xmlReport struct {
	XMLName   xml.Name          `xml:"validationReport"`
	Package   xmlPackage        `xml:"package"`
	Structure xmlStructure      `xml:"structure"`
	Schema    *xmlSchemaResult  `xml:"schema,omitempty"`
	Profile   *xmlProfileResult `xml:"profile,omitempty"`
	Stages    xmlStages         `xml:"stages"`
	Errors    []xmlStageError   `xml:"stageError,omitempty"`
}

type xmlPackage struct {
	Name string `xml:"name"`
	Path string `xml:"path"`
	Size int64  `xml:"size"`
	SHA1 string `xml:"sha1,omitempty"`
}

type xmlStructure struct {
	Path     string       `xml:"path"`
	Status   string       `xml:"status"`
	Findings []xmlFinding `xml:"finding,omitempty"`
}

type xmlFinding struct {
	Path      string `xml:"path,attr"`
	Condition string `xml:"condition,attr"`
	Severity  string `xml:"severity,attr"`
	Message   string `xml:",chardata"`
}

type xmlSchemaResult struct {
	Valid  bool             `xml:"valid,attr"`
	Errors []xmlSchemaError `xml:"error,omitempty"`
}

type xmlSchemaError struct {
	Element  string `xml:"element,attr,omitempty"`
	Line     int    `xml:"line,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:",chardata"`
}

type xmlProfileResult struct {
	Name     string       `xml:"name,attr"`
	Valid    bool         `xml:"valid,attr"`
	Outcomes []xmlOutcome `xml:"rule"`
}

type xmlOutcome struct {
	ID      string `xml:"id,attr"`
	Outcome string `xml:"outcome,attr"`
	Message string `xml:",chardata"`
}

type xmlStages struct {
	Structure string `xml:"structure"`
	Schema    string `xml:"schema"`
	Profile   string `xml:"profile"`
}

type xmlStageError struct {
	Stage   string `xml:"stage,attr"`
	Message string `xml:",chardata"`
}

func toXML(r *domain.ValidationReport) xmlReport {
	out := xmlReport{
		Package: xmlPackage{
			Name: r.Package.Name,
			Path: r.Package.Path,
			Size: r.Package.Size,
			SHA1: r.Package.SHA1,
		},
		Structure: xmlStructure{
			Path:   r.Structure.Path,
			Status: string(r.Structure.Status),
		},
		Stages: xmlStages{
			Structure: string(r.Stages.Structure),
			Schema:    string(r.Stages.Schema),
			Profile:   string(r.Stages.Profile),
		},
	}

	for _, f := range r.Structure.Findings {
		out.Structure.Findings = append(out.Structure.Findings, xmlFinding{
			Path:      f.Path,
			Condition: f.Condition,
			Severity:  f.Severity,
			Message:   f.Message,
		})
	}

	if r.Schema != nil {
		sr := &xmlSchemaResult{Valid: r.Schema.Valid}
		for _, e := range r.Schema.Errors {
			sr.Errors = append(sr.Errors, xmlSchemaError{
				Element:  e.Element,
				Line:     e.Line,
				Severity: e.Severity,
				Message:  e.Message,
			})
		}
		out.Schema = sr
	}

	if r.Profile != nil {
		pr := &xmlProfileResult{Name: r.Profile.Profile, Valid: r.Profile.Valid}
		for _, o := range r.Profile.Outcomes {
			pr.Outcomes = append(pr.Outcomes, xmlOutcome{
				ID:      o.RuleID,
				Outcome: string(o.Outcome),
				Message: o.Message,
			})
		}
		out.Profile = pr
	}

	for stage, msg := range r.StageErrors {
		out.Errors = append(out.Errors, xmlStageError{Stage: stage, Message: msg})
	}

	return out
}
