package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eark-tools/ipcheck/internal/domain"
	"github.com/eark-tools/ipcheck/internal/domain/rules"
	"github.com/eark-tools/ipcheck/internal/domain/schema"
	"github.com/eark-tools/ipcheck/internal/domain/structure"
)

// ValidateService runs the three-stage validation pipeline over one package:
// structure, then schema, then rule profile, each stage gating the next.
// The service holds only immutable shared resources and is safe to use from
// concurrent goroutines; all per-run state lives in the report.
type ValidateService struct {
	scanner domain.PackageScanner
	sum     domain.Checksummer
	spec    domain.StructureSpec
	schema  *schema.Validator
	engine  *rules.Engine
}

// NewValidateService wires the pipeline. The structure spec, schema
// definition, and rule profile are validated up front so configuration
// faults surface before any package is touched.
func NewValidateService(
	scanner domain.PackageScanner,
	sum domain.Checksummer,
	spec domain.StructureSpec,
	schemaValidator *schema.Validator,
	engine *rules.Engine,
) (*ValidateService, error) {
	if scanner == nil {
		return nil, fmt.Errorf("validate service: nil scanner")
	}
	if schemaValidator == nil {
		return nil, fmt.Errorf("validate service: nil schema validator")
	}
	if engine == nil {
		return nil, fmt.Errorf("validate service: nil rule engine")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("validate service: %w", err)
	}
	return &ValidateService{
		scanner: scanner, sum: sum, spec: spec,
		schema: schemaValidator, engine: engine,
	}, nil
}

// Profile exposes the rule catalog for reporting, independent of any run.
func (s *ValidateService) Profile() *domain.Profile { return s.engine.Profile() }

// Validate produces exactly one report for the package at pkgPath. A
// non-conformant package is an ordinary report, never an error: structural,
// schema, and rule defects are data. A stage an environment fault kept from
// running is marked errored in the report, and the stages it gates stay
// absent rather than running against degraded input.
func (s *ValidateService) Validate(pkgPath string) (*domain.ValidationReport, error) {
	absPath, err := filepath.Abs(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", pkgPath, err)
	}

	report := &domain.ValidationReport{
		Package: s.packageInfo(absPath),
		Stages: domain.StageStates{
			Structure: domain.StageNotRun,
			Schema:    domain.StageNotRun,
			Profile:   domain.StageNotRun,
		},
	}

	pkg, err := s.scanner.Scan(absPath)
	if err != nil {
		report.Structure = domain.StructureDetails{
			Path:   absPath,
			Status: domain.StructureUnknown,
		}
		report.Stages.Structure = domain.StageErrored
		report.StageErrors = map[string]string{"structure": err.Error()}
		return report, nil
	}

	report.Structure = structure.Check(pkg, s.spec)
	report.Stages.Structure = domain.StageCompleted

	if report.Structure.Status != domain.StructureWellFormed {
		return report, nil
	}

	metsPath := filepath.Join(absPath, filepath.FromSlash(s.spec.MetadataFile))
	schemaResult, doc := s.schema.ValidateFile(metsPath)
	report.Schema = &schemaResult
	report.Stages.Schema = domain.StageCompleted

	if !schemaResult.Valid || doc == nil {
		return report, nil
	}

	profileResult := s.engine.Evaluate(doc)
	report.Profile = &profileResult
	report.Stages.Profile = domain.StageCompleted

	return report, nil
}

// packageInfo gathers descriptive metadata for the report. A checksum
// failure degrades to an empty digest instead of blocking validation.
func (s *ValidateService) packageInfo(absPath string) domain.PackageInfo {
	info := domain.PackageInfo{
		Name: filepath.Base(absPath),
		Path: filepath.Dir(absPath),
	}
	if fi, err := os.Stat(absPath); err == nil {
		info.Size = fi.Size()
	}
	if s.sum != nil {
		if digest, err := s.sum.Sum(absPath); err == nil {
			info.SHA1 = digest
		}
	}
	return info
}
