package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eark-tools/ipcheck/internal/adapters/outbound/checksum"
	"github.com/eark-tools/ipcheck/internal/adapters/outbound/config"
	"github.com/eark-tools/ipcheck/internal/adapters/outbound/report"
	"github.com/eark-tools/ipcheck/internal/adapters/outbound/scanner"
	"github.com/eark-tools/ipcheck/internal/adapters/outbound/tui"
	"github.com/eark-tools/ipcheck/internal/application"
	"github.com/eark-tools/ipcheck/internal/domain"
	"github.com/eark-tools/ipcheck/internal/domain/rules"
	"github.com/eark-tools/ipcheck/internal/domain/schema"
)

// Archive formats a package argument may arrive in. Extraction is the
// caller's responsibility; anything else is rejected outright.
var allowedExtensions = map[string]bool{
	"zip": true, "tar": true, "gz": true, "gzip": true,
}

func newCheckCmd() *cobra.Command {
	var (
		xmlOutput   bool
		hardcopy    bool
		pretty      bool
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "check <package> [package...]",
		Short: "Validate information packages",
		Long: "Run the three-stage validation pipeline (structure, METS schema, rule " +
			"profile) over each package and report the findings.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{ReportTimestamp: false})

			svc, err := buildValidateService(".", profilePath)
			if err != nil {
				return err
			}

			format := report.FormatJSON
			if xmlOutput {
				format = report.FormatXML
			}

			failed := 0
			for _, pkg := range args {
				fi, err := os.Stat(pkg)
				if err != nil {
					logger.Error("not a valid file or folder", "package", pkg)
					failed++
					continue
				}
				if !fi.IsDir() && !allowedExtensions[extension(pkg)] {
					logger.Warn("invalid extension, skipping", "package", pkg)
					continue
				}

				rep, err := svc.Validate(pkg)
				if err != nil {
					return fmt.Errorf("validating %s: %w", pkg, err)
				}

				if pretty {
					fmt.Fprintln(cmd.OutOrStdout(), tui.RenderReport(rep))
				} else if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
					return err
				}

				if hardcopy {
					path, err := report.Hardcopy(rep, format)
					if err != nil {
						return err
					}
					logger.Info("report written", "path", path)
				}

				if !rep.Conformant() {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d package(s) failed validation", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&xmlOutput, "xml", false, "Report results in XML instead of JSON")
	cmd.Flags().BoolVar(&hardcopy, "hardcopy", false, "Also persist reports as files on the filesystem")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render a human-readable report")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML rule profile replacing the built-in E-ARK CSIP profile")

	return cmd
}

// buildValidateService wires the pipeline from configuration found in
// cfgDir, falling back to the built-in CSIP defaults.
func buildValidateService(cfgDir, profilePath string) (*application.ValidateService, error) {
	cfg, err := config.New().Load(cfgDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if profilePath == "" {
		profilePath = cfg.ProfilePath
	}

	profile := domain.DefaultCSIPProfile()
	if profilePath != "" {
		profile, err = config.LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
	}

	engine, err := rules.NewEngine(profile)
	if err != nil {
		return nil, err
	}

	validator, err := schema.NewValidator(domain.DefaultMetsSchema())
	if err != nil {
		return nil, err
	}

	return application.NewValidateService(
		scanner.New(), checksum.New(), cfg.StructureSpec(), validator, engine,
	)
}

func extension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
