package domain

// EntryKind distinguishes files from directories in a package listing.
type EntryKind string

const (
	EntryFile EntryKind = "file"
	EntryDir  EntryKind = "directory"
)

// PackageEntry is one member of an information package, addressed by its
// path relative to the package root (always forward-slash separated).
type PackageEntry struct {
	Path string    `json:"path"`
	Kind EntryKind `json:"kind"`
	Size int64     `json:"size,omitempty"`
}

// Package is a materialized information package on the filesystem: a root
// path plus the discovered member entries. It is read-only once validation
// begins; validators never mutate the package.
type Package struct {
	RootPath string         `json:"root_path"`
	Entries  []PackageEntry `json:"entries"`
}

// Entry returns the entry at relPath, if present.
func (p *Package) Entry(relPath string) (PackageEntry, bool) {
	for _, e := range p.Entries {
		if e.Path == relPath {
			return e, true
		}
	}
	return PackageEntry{}, false
}

// HasFile reports whether relPath exists in the package as a regular file.
func (p *Package) HasFile(relPath string) bool {
	e, ok := p.Entry(relPath)
	return ok && e.Kind == EntryFile
}

// HasDir reports whether relPath exists in the package as a directory.
func (p *Package) HasDir(relPath string) bool {
	e, ok := p.Entry(relPath)
	return ok && e.Kind == EntryDir
}

// PackageInfo carries descriptive metadata about the package under
// validation, recorded in the report alongside the findings.
type PackageInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	SHA1 string `json:"sha1,omitempty"`
}
