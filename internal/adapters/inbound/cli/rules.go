package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eark-tools/ipcheck/internal/adapters/outbound/config"
	"github.com/eark-tools/ipcheck/internal/domain"
)

func newRulesCmd() *cobra.Command {
	var (
		jsonOutput  bool
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule profile catalog",
		Long:  "Print the identifiers, names, and severities of every rule in the profile, without validating anything.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := domain.DefaultCSIPProfile()
			if profilePath != "" {
				var err error
				profile, err = config.LoadProfile(profilePath)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Name  string        `json:"name"`
					Rules []domain.Rule `json:"rules"`
				}{profile.Name(), profile.Rules()})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rules)\n", profile.Name(), profile.Len())
			for _, r := range profile.Rules() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-8s %s\n", r.ID, r.Severity, r.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML rule profile replacing the built-in E-ARK CSIP profile")

	return cmd
}
