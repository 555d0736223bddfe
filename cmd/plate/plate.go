// Package plate implements the command for fitting a single plate file.
package plate

import (
	"github.com/spf13/cobra"

	"github.com/pfagrelius/skyfit-go/internal/analysis"
	"github.com/pfagrelius/skyfit-go/internal/conf"
)

// Command creates the plate command for fitting one plate flux file.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plate [input.json]",
		Short: "Fit a single plate flux file",
		Long:  "Decompose the sampled spectra of one plate flux file and write the fit records to the configured sinks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := analysis.NewPipeline(settings)
			if err != nil {
				return err
			}
			defer pipeline.Close()
			return pipeline.ProcessPlateFile(args[0])
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the plate command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVarP(&settings.Output.File.Path, "output", "o", settings.Output.File.Path, "Path to output directory")
}
