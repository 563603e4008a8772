package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// PackageScanner implements domain.PackageScanner by walking an unpacked
// package root. It reads only; the package is never mutated.
type PackageScanner struct{}

func New() *PackageScanner {
	return &PackageScanner{}
}

// Scan lists every entry beneath rootPath, relative forward-slash paths in
// lexical walk order, so repeated scans of the same package are identical.
// A root that does not exist or is not a directory is an environment fault
// reported as an error, not a package defect.
func (s *PackageScanner) Scan(rootPath string) (*domain.Package, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("package root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("package root %s is not a directory; unpack archives before validating", absPath)
	}

	pkg := &domain.Package{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absPath {
			return nil
		}

		relPath, err := filepath.Rel(absPath, path)
		if err != nil {
			return err
		}

		entry := domain.PackageEntry{
			Path: filepath.ToSlash(relPath),
			Kind: domain.EntryDir,
		}
		if !d.IsDir() {
			entry.Kind = domain.EntryFile
			if info, err := d.Info(); err == nil {
				entry.Size = info.Size()
			}
		}
		pkg.Entries = append(pkg.Entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning package: %w", err)
	}

	return pkg, nil
}
