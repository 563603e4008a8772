package domain

// StructureStatus describes whether a package's on-disk layout satisfies
// the mandatory structural constraints.
type StructureStatus string

const (
	// StructureWellFormed means every mandatory layout constraint holds.
	StructureWellFormed StructureStatus = "well-formed"
	// StructureNotWellFormed means at least one error-severity structural
	// finding was recorded.
	StructureNotWellFormed StructureStatus = "not-well-formed"
	// StructureUnknown means the layout could not be examined at all, e.g.
	// the root path is unreadable. Distinct from a package defect.
	StructureUnknown StructureStatus = "unknown"
)

// Condition codes for structural findings.
const (
	CondMissingMetadataFile    = "MissingMetadataFile"
	CondMetadataNotAFile       = "MetadataNotAFile"
	CondDisallowedEntry        = "DisallowedEntry"
	CondRepresentationNotADir  = "RepresentationNotADirectory"
	CondEmptyRepresentation    = "EmptyRepresentation"
	CondMissingDataDirectory   = "MissingDataDirectory"
	CondEmptyRepresentationSet = "EmptyRepresentationSet"
)

// Finding records one structural expectation that did not hold, tied to the
// package-relative path it concerns.
type Finding struct {
	Path      string `json:"path"`
	Condition string `json:"condition"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
}

// StructureDetails is the structure checker's complete output for one run:
// resolved root path, final status, and every finding in discovery order.
// Immutable once the checker returns it.
type StructureDetails struct {
	Path     string          `json:"path"`
	Status   StructureStatus `json:"status"`
	Findings []Finding       `json:"findings"`
}

// ErrorFindings returns the findings of error severity.
func (d StructureDetails) ErrorFindings() []Finding {
	var out []Finding
	for _, f := range d.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// StatusFromFindings derives the final status: well-formed iff no finding
// of error severity was recorded.
func StatusFromFindings(findings []Finding) StructureStatus {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return StructureNotWellFormed
		}
	}
	return StructureWellFormed
}
