package main

import (
	"fmt"
	"io"
	"os"

	"riskscanner/internal/config"
	"riskscanner/internal/report"
	"riskscanner/pkg/domain"
	"riskscanner/pkg/metrics"

	"github.com/spf13/cobra"
)

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("could not read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", args[0], err)
	}

	return string(data), nil
}

func checkCommand(cfg *config.Config) *cobra.Command {
	var (
		asJSON    bool
		highlight bool
		minLength int
		sourceURL string
	)

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Scans a contract file or stdin and prints the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if n := len([]rune(text)); n < minLength {
				return fmt.Errorf("not enough text found to analyze: %d characters, need at least %d", n, minLength)
			}

			mp, err := metrics.New()
			if err != nil {
				return err //nolint: wrapcheck
			}
			defer func() { _ = mp.Shutdown(ctx) }()

			s, closeScanner, err := getScanner(ctx, cfg, mp)
			if err != nil {
				return err
			}
			defer closeScanner()

			res, err := s.Scan(ctx, &domain.ScanRequest{Text: text, URL: sourceURL})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return report.WriteJSON(out, res) //nolint: wrapcheck
			}
			if err := report.WriteText(out, res); err != nil {
				return err //nolint: wrapcheck
			}
			if highlight && len(res.Risks) > 0 {
				_, err = fmt.Fprintf(out, "\n%s\n", report.Highlight(text, res.Risks))
			}

			return err //nolint: wrapcheck
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "print the contract with the flagged clauses marked")
	cmd.Flags().IntVar(&minLength, "min-length", 0, "refuse texts shorter than this many characters")
	cmd.Flags().StringVar(&sourceURL, "url", "", "where the contract was taken from")

	return cmd
}
