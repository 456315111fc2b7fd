package main

import (
	"riskscanner/internal/config"
	"riskscanner/internal/report"

	"github.com/spf13/cobra"
)

func rulesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Lists the detection rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := getRegistry(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			return report.WriteRules(cmd.OutOrStdout(), registry.Rules()) //nolint: wrapcheck
		},
	}

	return cmd
}
