package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads "500ms"-style strings from YAML and JSON.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.parse(raw)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return d.parse(raw)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Duration) parse(raw string) error {
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(v)
	return nil
}

// Timing holds the transition timing constants.
type Timing struct {
	// EntryOffset is the viewport fraction at which a step counts as entered.
	EntryOffset float64 `yaml:"entry_offset" json:"entry_offset"`
	// Fade is the CSS opacity transition duration.
	Fade Duration `yaml:"fade" json:"fade"`
	// Grace is added to Fade before the target container is shown.
	Grace Duration `yaml:"grace" json:"grace"`
	// MapBuffer delays map rendering past the container reveal.
	MapBuffer Duration `yaml:"map_buffer" json:"map_buffer"`
}

// SwapDelay is the time between fading out and revealing the target container.
func (t Timing) SwapDelay() time.Duration {
	return t.Fade.Std() + t.Grace.Std()
}

// MapDelay is the time before a freshly revealed map container is drawn.
func (t Timing) MapDelay() time.Duration {
	return t.SwapDelay() + t.MapBuffer.Std()
}

// Layout holds the column split thresholds, in percent.
type Layout struct {
	// MinTextPercent is the threshold at or below which the text column collapses.
	MinTextPercent float64 `yaml:"min_text_percent" json:"min_text_percent"`
	// CollapsedTextWidth is the width kept for a collapsed text column so the
	// scroll detector still has a trigger region.
	CollapsedTextWidth float64 `yaml:"collapsed_text_width" json:"collapsed_text_width"`
	// CollapsedStickyWidth is the sticky width used while text is collapsed.
	CollapsedStickyWidth float64 `yaml:"collapsed_sticky_width" json:"collapsed_sticky_width"`
}

// Display holds the CSS display value each container uses when shown.
type Display struct {
	Image string `yaml:"image" json:"image"`
	Map   string `yaml:"map" json:"map"`
	Video string `yaml:"video" json:"video"`
}

// Transition configures how overlapping transitions interact.
type Transition struct {
	// CancelStale stops the pending callbacks of a previous transition when a
	// new swap starts. Disabling it restores the legacy overlapping behaviour.
	CancelStale bool `yaml:"cancel_stale" json:"cancel_stale"`
	// DefaultZoom is used for map steps that carry no zoom level.
	DefaultZoom float64 `yaml:"default_zoom" json:"default_zoom"`
}

// Watch configures the one-shot patch applied to a third-party element.
type Watch struct {
	MatchClass string `yaml:"match_class" json:"match_class"`
	AddClass   string `yaml:"add_class" json:"add_class"`
}

// Config is the full engine configuration.
type Config struct {
	Timing     Timing     `yaml:"timing" json:"timing"`
	Layout     Layout     `yaml:"layout" json:"layout"`
	Display    Display    `yaml:"display" json:"display"`
	Transition Transition `yaml:"transition" json:"transition"`
	Watch      Watch      `yaml:"watch" json:"watch"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Timing: Timing{
			EntryOffset: 0.65,
			Fade:        Duration(500 * time.Millisecond),
			Grace:       Duration(100 * time.Millisecond),
			MapBuffer:   Duration(100 * time.Millisecond),
		},
		Layout: Layout{
			MinTextPercent:       5,
			CollapsedTextWidth:   5,
			CollapsedStickyWidth: 90,
		},
		Display: Display{
			Image: "flex",
			Map:   "block",
			Video: "flex",
		},
		Transition: Transition{
			CancelStale: true,
			DefaultZoom: 10,
		},
		Watch: Watch{
			MatchClass: "map-attribution",
			AddClass:   "scrolly-attribution",
		},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	if c.Timing.EntryOffset < 0 || c.Timing.EntryOffset > 1 {
		return fmt.Errorf("timing.entry_offset must be within [0,1], got %v", c.Timing.EntryOffset)
	}
	if c.Timing.Fade < 0 || c.Timing.Grace < 0 || c.Timing.MapBuffer < 0 {
		return fmt.Errorf("timing durations must not be negative")
	}
	l := c.Layout
	for name, v := range map[string]float64{
		"min_text_percent":       l.MinTextPercent,
		"collapsed_text_width":   l.CollapsedTextWidth,
		"collapsed_sticky_width": l.CollapsedStickyWidth,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("layout.%s must be within [0,100], got %v", name, v)
		}
	}
	if l.CollapsedTextWidth+l.CollapsedStickyWidth > 100 {
		return fmt.Errorf("layout: collapsed widths exceed 100%%")
	}
	if c.Display.Image == "" || c.Display.Map == "" || c.Display.Video == "" {
		return fmt.Errorf("display values must not be empty")
	}
	return nil
}
