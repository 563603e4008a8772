package domain

// PackageScanner materializes a Package from a filesystem path.
type PackageScanner interface {
	Scan(rootPath string) (*Package, error)
}

// ConfigLoader loads the validator configuration for a package path.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// Checksummer computes a content digest over a package file or directory.
type Checksummer interface {
	Sum(path string) (string, error)
}

// Config holds validator configuration loaded from .ipcheck.yaml.
type Config struct {
	// Structure overrides merged over DefaultStructureSpec.
	MetadataFile string   `yaml:"metadata_file"`
	AllowedFiles []string `yaml:"allowed_files"`
	AllowedDirs  []string `yaml:"allowed_dirs"`
	// ProfilePath points at a YAML rule profile replacing the built-in one.
	ProfilePath string `yaml:"profile"`
}

// DefaultConfig returns the zero configuration: CSIP structure spec and the
// built-in profile.
func DefaultConfig() Config {
	return Config{}
}

// StructureSpec merges the configuration over the default CSIP layout.
func (c Config) StructureSpec() StructureSpec {
	spec := DefaultStructureSpec()
	if c.MetadataFile != "" {
		spec.MetadataFile = c.MetadataFile
	}
	spec.AllowedFiles = append(spec.AllowedFiles, c.AllowedFiles...)
	spec.AllowedDirs = append(spec.AllowedDirs, c.AllowedDirs...)
	return spec
}
