package domain

// StageState records whether a pipeline stage ran for a given package.
// A stage that could not run because of an environment fault is "errored",
// which is distinct from a stage that ran and reported defects.
type StageState string

const (
	StageNotRun    StageState = "not-run"
	StageErrored   StageState = "errored"
	StageCompleted StageState = "completed"
)

// StageStates tracks the three pipeline stages for one validation run.
type StageStates struct {
	Structure StageState `json:"structure"`
	Schema    StageState `json:"schema"`
	Profile   StageState `json:"profile"`
}

// ValidationReport is the single externally visible artifact of validating
// one package. Schema is present only when the structure stage completed
// with a well-formed layout; Profile is present only when the schema stage
// completed with a valid document. Absent stages are nil, never vacuous
// passes. The report is produced exactly once per run and immutable
// thereafter.
type ValidationReport struct {
	Package   PackageInfo      `json:"package"`
	Structure StructureDetails `json:"structure"`
	Schema    *SchemaResult    `json:"schema,omitempty"`
	Profile   *ProfileResult   `json:"profile,omitempty"`
	Stages    StageStates      `json:"stages"`
	// StageErrors carries the diagnostic for any stage in state "errored".
	StageErrors map[string]string `json:"stage_errors,omitempty"`
}

// Conformant reports whether the package passed every stage that gates it:
// well-formed structure, valid schema, and a valid rule profile.
func (r *ValidationReport) Conformant() bool {
	return r.Structure.Status == StructureWellFormed &&
		r.Schema != nil && r.Schema.Valid &&
		r.Profile != nil && r.Profile.Valid
}
