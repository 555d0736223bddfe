// conf/validate.go settings validation
package conf

import (
	"fmt"

	"github.com/pfagrelius/skyfit-go/internal/errors"
)

// ValidateSettings checks that loaded settings are internally consistent.
func ValidateSettings(settings *Settings) error {
	var validationErrors []string

	if err := validateFitSettings(&settings.Fit); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateOutputSettings(&settings.Output); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if len(validationErrors) > 0 {
		return errors.Newf("settings validation failed: %v", validationErrors).
			Component("configuration").
			Category(errors.CategoryValidation).
			Context("error_count", len(validationErrors)).
			Build()
	}

	return nil
}

func validateFitSettings(fit *FitSettings) error {
	if fit.ContinuumTermsBlue < 1 {
		return fmt.Errorf("fit.continuumtermsblue must be at least 1, got %d", fit.ContinuumTermsBlue)
	}
	if fit.ContinuumTermsRed < 1 {
		return fmt.Errorf("fit.continuumtermsred must be at least 1, got %d", fit.ContinuumTermsRed)
	}
	if fit.MaxSpectra < 1 {
		return fmt.Errorf("fit.maxspectra must be at least 1, got %d", fit.MaxSpectra)
	}
	if fit.Workers < 0 {
		return fmt.Errorf("fit.workers must not be negative, got %d", fit.Workers)
	}
	if fit.BlueIntensityMin < 0 || fit.RedIntensityMin < 0 {
		return fmt.Errorf("catalog intensity thresholds must not be negative")
	}
	return nil
}

func validateOutputSettings(output *OutputSettings) error {
	if !output.File.Enabled && !output.SQLite.Enabled {
		return fmt.Errorf("at least one output sink (file or sqlite) must be enabled")
	}
	if output.File.Enabled && output.File.Path == "" {
		return fmt.Errorf("output.file.path must be set when file output is enabled")
	}
	if output.SQLite.Enabled && output.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.path must be set when sqlite output is enabled")
	}
	return nil
}
