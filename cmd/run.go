package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statfetch/bodyshape-cli/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch the source table and clean it in one go",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		p := pipeline.New(c, logger)
		raw, err := p.Fetch(cmd.Context())
		if err != nil {
			// A stale raw artifact from an earlier run still lets cleaning
			// proceed when the endpoint is flaky.
			if _, statErr := os.Stat(p.RawPath()); statErr != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "⚠ Warning: fetch failed (%v); cleaning existing %s\n", err, p.RawPath())
			raw = p.RawPath()
		}
		dest, err := p.Clean(raw, "")
		if err != nil {
			return err
		}
		fmt.Printf("✓ Saved cleaned table to %s\n", dest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
