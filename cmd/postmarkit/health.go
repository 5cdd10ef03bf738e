package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/postmarkit/pkg/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe Redis and the Postmark API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		report := health.Run(ctx, a.checks, health.WithLogger(a.log))
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if !report.Healthy() {
			return fmt.Errorf("unhealthy: %v", report.Failed())
		}
		return nil
	},
}
