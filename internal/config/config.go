package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"go.uber.org/multierr"
)

type Config struct {
	Paths  PathsConfig
	Render RenderConfig
	Log    LogConfig

	// Workers is the number of recipients processed at the same time.
	Workers int

	Layers []models.LayerConfig
}

type PathsConfig struct {
	SourceDir      string
	OutputDir      string
	RecipientsFile string
	LayersFile     string
}

type RenderConfig struct {
	// Supersample is the number of pixels per PDF point of the watermark
	// image.
	Supersample    int
	JPEGQuality    int
	FontDirs       []string
	FontFamily     string
	FontSize       float64
	MismatchPolicy string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration from the environment and an optional .env
// file. Layers come from LAYERS_FILE when set and from the built-in stack
// otherwise.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Paths: PathsConfig{
			SourceDir:      getEnv("SOURCE_DIR", "./pdf"),
			OutputDir:      getEnv("OUTPUT_DIR", "./result"),
			RecipientsFile: getEnv("RECIPIENTS_FILE", "./emails.txt"),
			LayersFile:     getEnv("LAYERS_FILE", ""),
		},
		Render: RenderConfig{
			Supersample:    getEnvAsInt("SUPERSAMPLE", 4),
			JPEGQuality:    getEnvAsInt("JPEG_QUALITY", 85),
			FontDirs:       getEnvAsList("FONT_DIRS", nil),
			FontFamily:     getEnv("FONT_FAMILY", "go"),
			FontSize:       getEnvAsFloat("FONT_SIZE", 80),
			MismatchPolicy: getEnv("MISMATCH_POLICY", "skip"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Workers: getEnvAsInt("WORKERS", runtime.NumCPU()),
	}

	return cfg, nil
}

// LoadLayers fills Layers from the layer file, or with the default stack
// when no file is configured.
func (c *Config) LoadLayers() error {
	if c.Paths.LayersFile == "" {
		c.Layers = DefaultLayers(c.Render.FontFamily, c.Render.FontSize)
		return nil
	}
	layers, err := LoadLayerFile(c.Paths.LayersFile)
	if err != nil {
		return err
	}
	c.Layers = layers
	return nil
}

// Validate reports every invalid setting at once. All returned errors wrap
// models.ErrConfiguration.
func (c *Config) Validate() error {
	var errs error
	if c.Paths.SourceDir == "" {
		errs = multierr.Append(errs, models.NewConfigError("source_dir", "must not be empty"))
	}
	if c.Paths.OutputDir == "" {
		errs = multierr.Append(errs, models.NewConfigError("output_dir", "must not be empty"))
	}
	if c.Paths.RecipientsFile == "" {
		errs = multierr.Append(errs, models.NewConfigError("recipients_file", "must not be empty"))
	}
	if c.Workers < 1 {
		errs = multierr.Append(errs, models.NewConfigError("workers", fmt.Sprintf("must be at least 1, got %d", c.Workers)))
	}
	if c.Render.Supersample < 1 || c.Render.Supersample > 16 {
		errs = multierr.Append(errs, models.NewConfigError("supersample", fmt.Sprintf("must be between 1 and 16, got %d", c.Render.Supersample)))
	}
	if c.Render.JPEGQuality < 1 || c.Render.JPEGQuality > 100 {
		errs = multierr.Append(errs, models.NewConfigError("jpeg_quality", fmt.Sprintf("must be between 1 and 100, got %d", c.Render.JPEGQuality)))
	}
	switch c.Render.MismatchPolicy {
	case "skip", "abort":
	default:
		errs = multierr.Append(errs, models.NewConfigError("mismatch_policy", fmt.Sprintf("must be skip or abort, got %q", c.Render.MismatchPolicy)))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = multierr.Append(errs, models.NewConfigError("log_format", fmt.Sprintf("must be json or console, got %q", c.Log.Format)))
	}
	for _, l := range c.Layers {
		errs = multierr.Append(errs, l.Validate())
	}
	return errs
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvAsList splits a value on the OS path list separator.
func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, item := range filepath.SplitList(value) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
