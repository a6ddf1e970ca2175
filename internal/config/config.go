package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/viper"

	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/placement"
)

// EnvPrefix prefixes environment overrides, e.g. IMAGE_CROPPER_OUTPUT_QUALITY
const EnvPrefix = "IMAGE_CROPPER"

// Config holds the application configuration
type Config struct {
	Output    OutputConfig    `mapstructure:"output" json:"output"`
	UI        UIConfig        `mapstructure:"ui" json:"ui"`
	Placement PlacementConfig `mapstructure:"placement" json:"placement"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging"`
}

// OutputConfig holds configuration for exported crops
type OutputConfig struct {
	Quality       int    `mapstructure:"quality" json:"quality"`
	DefaultTarget string `mapstructure:"default_target" json:"default_target"`
	SeedFilename  string `mapstructure:"seed_filename" json:"seed_filename"`
	Dir           string `mapstructure:"dir" json:"dir"`
	Filter        string `mapstructure:"filter" json:"filter"`
}

// UIConfig holds configuration for the desktop window
type UIConfig struct {
	Width      float32 `mapstructure:"width" json:"width"`
	Height     float32 `mapstructure:"height" json:"height"`
	HandleSize float32 `mapstructure:"handle_size" json:"handle_size"`
}

// PlacementConfig holds configuration for the auto place action
type PlacementConfig struct {
	Mode      string        `mapstructure:"mode" json:"mode"`
	OllamaURL string        `mapstructure:"ollama_url" json:"ollama_url"`
	Model     string        `mapstructure:"model" json:"model"`
	SendSize  int           `mapstructure:"send_size" json:"send_size"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
}

// LoggingConfig holds configuration for the application log
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	File       string `mapstructure:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" json:"max_age_days"`
}

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// ResampleFilter returns the imaging filter named by Filter, Lanczos if unknown
func (o OutputConfig) ResampleFilter() imaging.ResampleFilter {
	if f, ok := filters[strings.ToLower(o.Filter)]; ok {
		return f
	}
	return imaging.Lanczos
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.quality", 90)
	v.SetDefault("output.default_target", cropbox.DefaultTarget.String())
	v.SetDefault("output.seed_filename", "image_000.jpg")
	v.SetDefault("output.dir", "")
	v.SetDefault("output.filter", "lanczos")

	v.SetDefault("ui.width", 1280)
	v.SetDefault("ui.height", 900)
	v.SetDefault("ui.handle_size", 18)

	v.SetDefault("placement.mode", string(placement.ModeCenter))
	v.SetDefault("placement.ollama_url", "http://localhost:11434")
	v.SetDefault("placement.model", "openbmb/minicpm-v4.5")
	v.SetDefault("placement.send_size", 1024)
	v.SetDefault("placement.timeout", 2*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 2)
	v.SetDefault("logging.max_age_days", 28)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns a configuration with default values
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

// Load reads configuration from filename, layered over defaults and under
// environment overrides. An empty filename uses GetConfigPath; a missing
// default file is not an error.
func Load(filename string) (*Config, error) {
	v := newViper()

	explicit := filename != ""
	if !explicit {
		filename = GetConfigPath()
	}
	v.SetConfigFile(filename)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case explicit:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			// defaults only
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SaveToFile writes the configuration as JSON
func (c *Config) SaveToFile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}
	if _, err := cropbox.ParseTarget(c.Output.DefaultTarget); err != nil {
		return fmt.Errorf("output.default_target: %w", err)
	}
	if c.Output.SeedFilename == "" {
		return fmt.Errorf("output.seed_filename cannot be empty")
	}
	if _, ok := filters[strings.ToLower(c.Output.Filter)]; !ok {
		return fmt.Errorf("output.filter must be one of nearest, linear, catmullrom, lanczos")
	}
	if c.UI.HandleSize <= 0 {
		return fmt.Errorf("ui.handle_size must be positive")
	}
	if _, err := placement.ParseMode(c.Placement.Mode); err != nil {
		return fmt.Errorf("placement.mode: %w", err)
	}
	if c.Placement.Timeout <= 0 {
		return fmt.Errorf("placement.timeout must be positive")
	}
	if c.Placement.SendSize < 0 {
		return fmt.Errorf("placement.send_size cannot be negative")
	}
	if c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be positive")
	}
	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-cropper", "config.json")
}
