// config.go: settings struct and functions to load and save the skyfit configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// LogRotationType defines the type of log rotation
type LogRotationType string

const (
	RotationDaily  LogRotationType = "daily"
	RotationWeekly LogRotationType = "weekly"
	RotationSize   LogRotationType = "size"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled     bool            // true to enable this log
	Path        string          // path to log file
	Rotation    LogRotationType // rotation type
	MaxSize     int64           // max size in bytes for size rotation
	RotationDay string          // day of the week for weekly rotation, e.g. "Sunday"
}

// MainSettings contains the main settings for the application
type MainSettings struct {
	Name string    // name of this node
	Log  LogConfig // main log file settings
}

// FitSettings contains settings for the spectrum decomposition itself.
type FitSettings struct {
	CatalogDir         string  // directory holding airglow line list files
	ContinuumTermsBlue int     // Legendre terms for the blue detector arm
	ContinuumTermsRed  int     // Legendre terms for the red detector arm
	MaxSpectra         int     // maximum number of spectra sampled per plate
	Seed               int64   // RNG seed for spectrum sampling, 0 for time-based
	Workers            int     // plate worker pool size, 0 for NumCPU
	BlueIntensityMin   float64 // catalog intensity threshold for the blue band
	RedIntensityMin    float64 // catalog intensity threshold for the red band
}

// InputSettings describes where plate flux files and metadata live.
type InputSettings struct {
	Path         string // plate flux file or directory of plate flux files
	MetadataPath string // path to the plate/spectrum metadata CSV
	Watch        bool   // true to keep watching the input directory
}

// FileOutputSettings contains settings for per-plate file output.
type FileOutputSettings struct {
	Enabled bool   // true to write one JSON output unit per plate
	Path    string // output directory
}

// SQLiteSettings contains settings for the SQLite results datastore.
type SQLiteSettings struct {
	Enabled bool   // true to persist fit records to SQLite
	Path    string // path to SQLite database
}

// OutputSettings groups the supported result sinks.
type OutputSettings struct {
	File   FileOutputSettings
	SQLite SQLiteSettings
}

// MetricsSettings contains settings for the Prometheus endpoint.
type MetricsSettings struct {
	Enabled bool   // true to expose Prometheus metrics
	Listen  string // listen address, e.g. "0.0.0.0:8090"
}

// Settings contains all configuration options for skyfit.
type Settings struct {
	Debug bool // true to enable debug mode

	Main    MainSettings
	Fit     FitSettings
	Input   InputSettings
	Output  OutputSettings
	Metrics MetricsSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration from disk into the package-level instance.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with defaults and reads the configuration file.
func initViper() error {
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
		return createDefaultConfig(configPaths)
	}

	return nil
}

// createDefaultConfig writes the embedded default config.yaml to the first
// default path and points viper at it.
func createDefaultConfig(configPaths []string) error {
	configPath := filepath.Join(configPaths[0], "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	defaultConfig, err := getDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	log.Printf("Created default config file at: %v", configPath)
	viper.SetConfigFile(configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the embedded default configuration template.
func getDefaultConfig() (string, error) {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		return "", fmt.Errorf("error reading embedded config.yaml: %w", err)
	}
	return string(data), nil
}

// Setting returns the current settings instance, loading it if necessary.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})

	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
