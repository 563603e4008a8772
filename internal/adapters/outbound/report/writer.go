package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// Format selects a report serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// Write serializes a finished validation report. The core never formats
// its own output; this adapter consumes the report it produced.
func Write(w io.Writer, r *domain.ValidationReport, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatXML:
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(toXML(r)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Hardcopy persists the report under a directory named after the package
// checksum, mirroring ip_validator.<package>.<format>. Returns the written
// file path.
func Hardcopy(r *domain.ValidationReport, format Format) (string, error) {
	dir := r.Package.SHA1
	if dir == "" {
		dir = r.Package.Name
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("ip_validator.%s.%s", r.Package.Name, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := Write(f, r, format); err != nil {
		return "", err
	}
	return path, nil
}
