package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/config"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage board presets",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default settings as a YAML preset",
		Long: "Write the default board settings to path, or to MOODBOARD_PRESET\n" +
			"(moodboard.yaml) when no path is given. Existing files are kept\n" +
			"unless --force is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := cfg.PresetPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SavePreset(path, board.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote preset %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing preset")

	cmd.AddCommand(initCmd)
	return cmd
}
