// config.go: settings struct and functions to load and save application settings.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled bool   // true to enable this log
	Path    string // path to log file
}

// MainSettings contains general application settings
type MainSettings struct {
	Name  string    // name of this node, can be used to identify source of discoveries
	Debug bool      // enable debug mode
	Log   LogConfig // main log configuration
}

// DetectorSettings contains the primary detector model configuration
type DetectorSettings struct {
	ModelPath  string  // path to the detector tflite model
	LabelPath  string  // path to the detector label file, empty for embedded labels
	Threshold  float64 // minimum confidence for a detection to be reported
	InputSize  int     // square model input size in pixels
	Threads    int     // number of CPU threads for inference, 0 for all
	UseXNNPACK bool    // use XNNPACK delegate for inference acceleration
}

// ClassifierSettings contains the fallback classifier configuration
type ClassifierSettings struct {
	Enabled   bool    // enable the fallback classifier
	ModelPath string  // path to the classifier tflite model
	LabelPath string  // path to the classifier label file
	InputSize int     // square model input size in pixels
	TopN      int     // number of top candidates scanned by the keyword mapper
	MinScore  float64 // minimum per-candidate score considered by the mapper
}

// EnsembleSettings contains the decision engine confidence tiers
type EnsembleSettings struct {
	PrimaryThreshold     float64 // primary result accepted verbatim at or above this
	FallbackThreshold    float64 // fallback consulted between this and PrimaryThreshold
	FallbackConfidence   float64 // assumed confidence of a bare fallback label
	ConflictConfidence   float64 // fixed confidence when the fallback overrides the primary
	FallbackOnlyConfidence float64 // confidence assigned when only the fallback produced a label
}

// EnrichmentSettings contains the catalog enrichment service configuration
type EnrichmentSettings struct {
	Enabled bool          // enable remote enrichment
	BaseURL string        // enrichment API base URL
	APIKey  string        // enrichment API key
	Model   string        // language model used for descriptions
	Timeout time.Duration // request timeout
	Refresh string        // re-enrichment policy: "placeholder" or "always"
	CacheTTL time.Duration // TTL for cached enrichment responses
}

// SessionSettings contains session stream processing configuration
type SessionSettings struct {
	QueueSize   int           // inbound frame queue length per session
	MaxFrameRate float64      // per-session frame rate limit, frames per second
	IdleTimeout time.Duration // sessions idle longer than this are ended
}

// MQTTSettings contains the optional discovery publisher configuration
type MQTTSettings struct {
	Enabled  bool   // enable MQTT discovery publishing
	Broker   string // MQTT broker URL
	Topic    string // topic discoveries are published to
	Username string // broker username
	Password string // broker password
}

// RealtimeSettings contains settings for realtime stream processing
type RealtimeSettings struct {
	Session SessionSettings
	MQTT    MQTTSettings
	Log     LogConfig
}

// ThumbnailSettings contains discovery thumbnail storage configuration
type ThumbnailSettings struct {
	Path    string // directory thumbnails are written to
	BaseURL string // public URL prefix for stored thumbnails
	MaxSize int    // longest thumbnail edge in pixels
	Quality int    // JPEG quality
}

// WebServerSettings contains HTTP server configuration
type WebServerSettings struct {
	Enabled bool   // true to enable the web server
	Port    string // port for the web server
	Debug   bool   // true to enable debug mode
	Log     LogConfig
}

// OutputSettings contains database output configuration
type OutputSettings struct {
	SQLite struct {
		Enabled bool   // true to enable SQLite output
		Path    string // path to the SQLite database
	}
	MySQL struct {
		Enabled  bool   // true to enable MySQL output
		Username string // MySQL username
		Password string // MySQL password
		Database string // MySQL database name
		Host     string // MySQL host
		Port     string // MySQL port
	}
}

// Settings contains all application settings
type Settings struct {
	Main       MainSettings
	Detector   DetectorSettings
	Classifier ClassifierSettings
	Ensemble   EnsembleSettings
	Enrichment EnrichmentSettings
	Realtime   RealtimeSettings
	Thumbnails ThumbnailSettings
	WebServer  WebServerSettings
	Output     OutputSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

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

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, run with defaults
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// Setting returns the current settings instance, loading them on first use.
func Setting() *Settings {
	settingsMutex.RLock()
	if settingsInstance != nil {
		defer settingsMutex.RUnlock()
		return settingsInstance
	}
	settingsMutex.RUnlock()

	if _, err := Load(); err != nil {
		return nil
	}
	return settingsInstance
}

// GetDefaultConfigPaths returns a list of default configuration paths for the
// current operating system, following standard conventions for application
// configuration files. If a config.yaml file is found in any of the paths,
// that path is returned as the only default.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("error fetching executable path: %w", err)
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error fetching user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "faunadex-go"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "faunadex-go"),
			"/etc/faunadex-go",
		}
	}

	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}
