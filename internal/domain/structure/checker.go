package structure

import (
	"fmt"
	"path"
	"strings"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// Check verifies a package layout against a structural specification and
// returns the full finding list. It never aborts on the first violation:
// all findings are collected before the final status is decided, and the
// status is well-formed iff none of them is of error severity.
func Check(pkg *domain.Package, spec domain.StructureSpec) domain.StructureDetails {
	var findings []domain.Finding

	findings = append(findings, checkMetadataFile(pkg, "", spec.MetadataFile)...)
	findings = append(findings, checkTopLevel(pkg, spec)...)
	findings = append(findings, checkRepresentations(pkg, "", spec)...)

	return domain.StructureDetails{
		Path:     pkg.RootPath,
		Status:   domain.StatusFromFindings(findings),
		Findings: findings,
	}
}

// checkMetadataFile verifies the metadata file exists under prefix as a
// regular file.
func checkMetadataFile(pkg *domain.Package, prefix, metadataFile string) []domain.Finding {
	rel := path.Join(prefix, metadataFile)
	e, ok := pkg.Entry(rel)
	if !ok {
		return []domain.Finding{{
			Path:      rel,
			Condition: domain.CondMissingMetadataFile,
			Message:   fmt.Sprintf("expected metadata file %s, found nothing", rel),
			Severity:  domain.SeverityError,
		}}
	}
	if e.Kind != domain.EntryFile {
		return []domain.Finding{{
			Path:      rel,
			Condition: domain.CondMetadataNotAFile,
			Message:   fmt.Sprintf("expected %s to be a regular file, found a directory", rel),
			Severity:  domain.SeverityError,
		}}
	}
	return nil
}

// checkTopLevel flags package-root entries outside the permitted set.
func checkTopLevel(pkg *domain.Package, spec domain.StructureSpec) []domain.Finding {
	var findings []domain.Finding
	for _, e := range childrenOf(pkg, "") {
		name := path.Base(e.Path)
		if spec.AllowedTopLevel(name, e.Kind) {
			continue
		}
		findings = append(findings, domain.Finding{
			Path:      e.Path,
			Condition: domain.CondDisallowedEntry,
			Message:   fmt.Sprintf("entry %s is not part of the package layout", e.Path),
			Severity:  domain.SeverityError,
		})
	}
	return findings
}

// checkRepresentations applies the representation rules beneath prefix.
// Each representation subtree must carry a data directory and may in turn
// hold nested representations, checked with the same rules; recursion is
// bounded by the depth actually present in the package.
func checkRepresentations(pkg *domain.Package, prefix string, spec domain.StructureSpec) []domain.Finding {
	if spec.RepresentationsDir == "" {
		return nil
	}
	repsDir := path.Join(prefix, spec.RepresentationsDir)
	if !pkg.HasDir(repsDir) {
		return nil
	}

	reps := childrenOf(pkg, repsDir)
	if len(reps) == 0 {
		return []domain.Finding{{
			Path:      repsDir,
			Condition: domain.CondEmptyRepresentationSet,
			Message:   fmt.Sprintf("%s contains no representations", repsDir),
			Severity:  domain.SeverityWarning,
		}}
	}

	var findings []domain.Finding
	for _, rep := range reps {
		if rep.Kind != domain.EntryDir {
			findings = append(findings, domain.Finding{
				Path:      rep.Path,
				Condition: domain.CondRepresentationNotADir,
				Message:   fmt.Sprintf("representation %s must be a directory", rep.Path),
				Severity:  domain.SeverityError,
			})
			continue
		}
		findings = append(findings, checkRepresentation(pkg, rep.Path, spec)...)
	}
	return findings
}

// checkRepresentation verifies one representation subtree.
func checkRepresentation(pkg *domain.Package, repPath string, spec domain.StructureSpec) []domain.Finding {
	children := childrenOf(pkg, repPath)
	if len(children) == 0 {
		return []domain.Finding{{
			Path:      repPath,
			Condition: domain.CondEmptyRepresentation,
			Message:   fmt.Sprintf("representation %s is empty", repPath),
			Severity:  domain.SeverityWarning,
		}}
	}

	var findings []domain.Finding
	if !pkg.HasDir(path.Join(repPath, spec.RepresentationDataDir)) {
		findings = append(findings, domain.Finding{
			Path:      path.Join(repPath, spec.RepresentationDataDir),
			Condition: domain.CondMissingDataDirectory,
			Message:   fmt.Sprintf("representation %s has no %s directory", repPath, spec.RepresentationDataDir),
			Severity:  domain.SeverityError,
		})
	}

	for _, e := range children {
		if !repAllowed(path.Base(e.Path), e.Kind, spec) {
			findings = append(findings, domain.Finding{
				Path:      e.Path,
				Condition: domain.CondDisallowedEntry,
				Message:   fmt.Sprintf("entry %s is not part of the representation layout", e.Path),
				Severity:  domain.SeverityWarning,
			})
		}
	}

	// Nested representations satisfy the same rules.
	findings = append(findings, checkRepresentations(pkg, repPath, spec)...)

	return findings
}

func repAllowed(name string, kind domain.EntryKind, spec domain.StructureSpec) bool {
	if kind == domain.EntryFile {
		return name == spec.MetadataFile
	}
	if name == spec.RepresentationDataDir || name == spec.RepresentationsDir {
		return true
	}
	for _, d := range spec.RepresentationAllowedDirs {
		if name == d {
			return true
		}
	}
	return false
}

// childrenOf returns the immediate children of dir ("" for the package
// root) in entry order.
func childrenOf(pkg *domain.Package, dir string) []domain.PackageEntry {
	var out []domain.PackageEntry
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}
	for _, e := range pkg.Entries {
		if !strings.HasPrefix(e.Path, prefix) || e.Path == dir {
			continue
		}
		rest := e.Path[len(prefix):]
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		out = append(out, e)
	}
	return out
}
