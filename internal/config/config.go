// Package config reads the tool's runtime configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings the CLI reads at startup.
type Config struct {
	// LogLevel enables debug logging when set to "debug".
	LogLevel string

	// KeypointTool is the external keypoint extraction binary.
	KeypointTool string

	// MaxPeaks caps peak lists printed by the detection subcommands;
	// 0 means unlimited.
	MaxPeaks int
}

// Load reads configuration from the environment. A .env file in the
// working directory is honoured when present; a missing file is not an
// error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     os.Getenv("RASTER_TOOLS_LOG_LEVEL"),
		KeypointTool: os.Getenv("RASTER_TOOLS_KEYPOINT_TOOL"),
	}
	if cfg.KeypointTool == "" {
		cfg.KeypointTool = "sift"
	}
	if v, err := strconv.Atoi(os.Getenv("RASTER_TOOLS_MAX_PEAKS")); err == nil && v > 0 {
		cfg.MaxPeaks = v
	}
	return cfg
}
