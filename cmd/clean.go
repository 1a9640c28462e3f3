package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statfetch/bodyshape-cli/internal/pipeline"
)

var cleanOutputPath string

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Normalize a raw table into the canonical cleaned CSV",
	Long: `Clean normalizes a previously downloaded raw table without touching the
network. With no argument it cleans the default raw artifact of the
configured table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		p := pipeline.New(c, logger)
		rawPath := p.RawPath()
		if len(args) == 1 {
			rawPath = args[0]
		}
		dest, err := p.Clean(rawPath, cleanOutputPath)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Saved cleaned table to %s\n", dest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutputPath, "output", "o", "", "destination path for the cleaned CSV")
}
