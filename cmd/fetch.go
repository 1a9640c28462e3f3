package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statfetch/bodyshape-cli/internal/fetch"
	"github.com/statfetch/bodyshape-cli/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the source table and save the raw tabular payload",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		p := pipeline.New(c, logger)
		raw, err := p.Fetch(cmd.Context())
		if err != nil {
			var nt *fetch.NoTabularError
			if errors.As(err, &nt) {
				fmt.Fprintf(os.Stderr, "⚠ Wrapper document saved to %s for inspection\n", p.WrapperPath())
			}
			return err
		}
		fmt.Printf("✓ Saved raw table to %s\n", raw)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
