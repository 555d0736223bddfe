// Package directory implements the command for fitting every plate file
// in a directory.
package directory

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pfagrelius/skyfit-go/internal/analysis"
	"github.com/pfagrelius/skyfit-go/internal/conf"
)

// Command creates the directory command for batch plate analysis.
func Command(settings *conf.Settings) *cobra.Command {
	var saveConfig bool

	cmd := &cobra.Command{
		Use:   "directory [path]",
		Short: "Fit all plate flux files in a directory",
		Long:  "Scan a directory for plate flux files, fit every plate whose output does not exist yet, and optionally keep watching for new plates.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			pipeline, err := analysis.NewPipeline(settings)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			if saveConfig && settings.Output.File.Enabled {
				snapshot := filepath.Join(settings.Output.File.Path, "config_used.yaml")
				if err := conf.SaveSettings(settings, snapshot); err != nil {
					return err
				}
			}

			return pipeline.DirectoryAnalysis()
		},
	}

	setupFlags(cmd, settings, &saveConfig)

	return cmd
}

// setupFlags defines flags specific to the directory command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings, saveConfig *bool) {
	cmd.Flags().BoolVarP(&settings.Input.Watch, "watch", "w", false, "Keep watching the directory for new plate files")
	cmd.Flags().IntVar(&settings.Fit.Workers, "workers", settings.Fit.Workers, "Plate worker pool size, 0 for all CPUs")
	cmd.Flags().StringVarP(&settings.Output.File.Path, "output", "o", settings.Output.File.Path, "Path to output directory")
	cmd.Flags().BoolVar(saveConfig, "save-config", false, "Write the effective configuration next to the output")
}
