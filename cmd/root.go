package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pfagrelius/skyfit-go/cmd/directory"
	"github.com/pfagrelius/skyfit-go/cmd/plate"
	"github.com/pfagrelius/skyfit-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skyfit",
		Short: "Night-sky spectrum decomposition CLI",
		Long:  "Separates night-sky spectra into airglow emission lines and continuum with a single linear fit per spectrum.",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		plate.Command(settings),
		directory.Command(settings),
	)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Fit.CatalogDir, "catalog", viper.GetString("fit.catalogdir"), "Directory holding airglow line list files")
	rootCmd.PersistentFlags().StringVar(&settings.Input.MetadataPath, "metadata", viper.GetString("input.metadatapath"), "Path to the plate metadata CSV")
	rootCmd.PersistentFlags().IntVar(&settings.Fit.MaxSpectra, "max-spectra", viper.GetInt("fit.maxspectra"), "Maximum number of spectra sampled per plate")
	rootCmd.PersistentFlags().Int64Var(&settings.Fit.Seed, "seed", viper.GetInt64("fit.seed"), "RNG seed for spectrum sampling, 0 for time-based")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		cobra.CheckErr(fmt.Errorf("error binding flags: %w", err))
	}
}
