// Package cli is the moodboard command line: render boards from files on
// disk and manage YAML presets.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns fresh commands
// with fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "moodboard",
		Short: "Compose images into a moodboard PNG",
		Long: "moodboard lays out a set of images as a grid, collage or smart rows,\n" +
			"paints a solid, gradient or textured background behind them and\n" +
			"writes the result as a PNG.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd())
	root.AddCommand(newPresetCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
