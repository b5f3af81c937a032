package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RASTER_TOOLS_LOG_LEVEL", "")
	t.Setenv("RASTER_TOOLS_KEYPOINT_TOOL", "")
	t.Setenv("RASTER_TOOLS_MAX_PEAKS", "")

	cfg := Load()
	assert.Equal(t, "", cfg.LogLevel)
	assert.Equal(t, "sift", cfg.KeypointTool)
	assert.Equal(t, 0, cfg.MaxPeaks)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RASTER_TOOLS_LOG_LEVEL", "debug")
	t.Setenv("RASTER_TOOLS_KEYPOINT_TOOL", "/opt/vlfeat/sift")
	t.Setenv("RASTER_TOOLS_MAX_PEAKS", "25")

	cfg := Load()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/vlfeat/sift", cfg.KeypointTool)
	assert.Equal(t, 25, cfg.MaxPeaks)
}

func TestLoadIgnoresBadMaxPeaks(t *testing.T) {
	t.Setenv("RASTER_TOOLS_MAX_PEAKS", "lots")
	assert.Equal(t, 0, Load().MaxPeaks)

	t.Setenv("RASTER_TOOLS_MAX_PEAKS", "-3")
	assert.Equal(t, 0, Load().MaxPeaks)
}
