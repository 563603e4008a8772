package domain

import "fmt"

// StructureSpec is the structural specification a package layout is checked
// against: the metadata file location, the permitted top-level entries, and
// the rules every representation subtree must satisfy in turn. The exact
// path set is configuration, not code; DefaultStructureSpec supplies the
// E-ARK CSIP layout.
type StructureSpec struct {
	// MetadataFile is the package-relative path of the mandatory
	// administrative metadata file.
	MetadataFile string `yaml:"metadata_file"`
	// AllowedFiles lists additional permitted top-level files.
	AllowedFiles []string `yaml:"allowed_files"`
	// AllowedDirs lists the permitted top-level directories.
	AllowedDirs []string `yaml:"allowed_dirs"`
	// RepresentationsDir names the directory whose children are
	// representations, each checked recursively. Empty disables the check.
	RepresentationsDir string `yaml:"representations_dir"`
	// RepresentationDataDir is the directory every representation must
	// contain.
	RepresentationDataDir string `yaml:"representation_data_dir"`
	// RepresentationAllowedDirs lists permitted directories inside a
	// representation besides the data directory.
	RepresentationAllowedDirs []string `yaml:"representation_allowed_dirs"`
}

// DefaultStructureSpec returns the E-ARK CSIP package layout.
func DefaultStructureSpec() StructureSpec {
	return StructureSpec{
		MetadataFile:              "METS.xml",
		AllowedFiles:              nil,
		AllowedDirs:               []string{"metadata", "representations", "schemas", "documentation"},
		RepresentationsDir:        "representations",
		RepresentationDataDir:     "data",
		RepresentationAllowedDirs: []string{"metadata", "schemas", "documentation"},
	}
}

// Validate reports whether the spec is usable. An unusable spec is an
// environment fault distinct from any package defect.
func (s StructureSpec) Validate() error {
	if s.MetadataFile == "" {
		return fmt.Errorf("structure spec: metadata_file must be set")
	}
	if s.RepresentationsDir != "" && s.RepresentationDataDir == "" {
		return fmt.Errorf("structure spec: representation_data_dir must be set when representations_dir is")
	}
	return nil
}

// AllowedTopLevel reports whether a top-level entry name is permitted.
func (s StructureSpec) AllowedTopLevel(name string, kind EntryKind) bool {
	if kind == EntryFile {
		if name == s.MetadataFile {
			return true
		}
		for _, f := range s.AllowedFiles {
			if name == f {
				return true
			}
		}
		return false
	}
	for _, d := range s.AllowedDirs {
		if name == d {
			return true
		}
	}
	return false
}
