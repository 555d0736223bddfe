// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "skyfit")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "skyfit.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)
	viper.SetDefault("main.log.rotationday", "Sunday")

	viper.SetDefault("fit.catalogdir", "airglow/")
	viper.SetDefault("fit.continuumtermsblue", 4)
	viper.SetDefault("fit.continuumtermsred", 3)
	viper.SetDefault("fit.maxspectra", 10)
	viper.SetDefault("fit.seed", 0)
	viper.SetDefault("fit.workers", 0)
	viper.SetDefault("fit.blueintensitymin", 10.0)
	viper.SetDefault("fit.redintensitymin", 3.0)

	viper.SetDefault("input.path", "sigma_sky_flux/")
	viper.SetDefault("input.metadatapath", "meta_rich.csv")
	viper.SetDefault("input.watch", false)

	viper.SetDefault("output.file.enabled", true)
	viper.SetDefault("output.file.path", "split_flux/")

	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "skyfit.db")

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.listen", "0.0.0.0:8090")
}
