package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/scrolly/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 0.65, cfg.Timing.EntryOffset)
	assert.Equal(t, 600*time.Millisecond, cfg.Timing.SwapDelay())
	assert.Equal(t, 700*time.Millisecond, cfg.Timing.MapDelay())
	assert.Equal(t, 5.0, cfg.Layout.MinTextPercent)
	assert.Equal(t, 90.0, cfg.Layout.CollapsedStickyWidth)
	assert.True(t, cfg.Transition.CancelStale)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrolly.yaml")
	content := []byte(`
timing:
  fade: 300ms
transition:
  cancel_stale: false
display:
  map: grid
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 400*time.Millisecond, cfg.Timing.SwapDelay())
	assert.False(t, cfg.Transition.CancelStale)
	assert.Equal(t, "grid", cfg.Display.Map)
	assert.Equal(t, "flex", cfg.Display.Image, "unset keys keep defaults")
	assert.Equal(t, 0.65, cfg.Timing.EntryOffset)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrolly.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timing":{"grace":"250ms"}}`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Timing.SwapDelay())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "timing:\n  fade: soon\n"},
		{"offset out of range", "timing:\n  entry_offset: 1.5\n"},
		{"collapsed widths overflow", "layout:\n  collapsed_sticky_width: 99\n"},
		{"empty display", "display:\n  video: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scrolly.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}
