package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/scrolly/pkg/config"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted scroll session.
type Scenario struct {
	Name   string          `yaml:"name"`
	Page   string          `yaml:"page,omitempty"`
	Markup string          `yaml:"markup,omitempty"`
	Config *config.Config  `yaml:"config,omitempty"`
	Settle config.Duration `yaml:"settle,omitempty"`
	Events []Event         `yaml:"events"`

	// dir resolves Page when the scenario was loaded from a file.
	dir string
}

// Event is one timeline entry. Exactly one action is set.
type Event struct {
	At     config.Duration `yaml:"at"`
	Enter  *Enter          `yaml:"enter,omitempty"`
	Resize bool            `yaml:"resize,omitempty"`
}

// Enter scrolls a step into view.
type Enter struct {
	Instance string `yaml:"instance,omitempty"`
	Step     int    `yaml:"step"`
}

// Action describes the event for reports.
func (e Event) Action() string {
	switch {
	case e.Enter != nil && e.Enter.Instance != "":
		return fmt.Sprintf("enter %s/%d", e.Enter.Instance, e.Enter.Step)
	case e.Enter != nil:
		return fmt.Sprintf("enter %d", e.Enter.Step)
	case e.Resize:
		return "resize"
	}
	return "none"
}

// Load reads a scenario file. base supplies the configuration that the
// scenario's own config section overrides.
func Load(path string, base config.Config) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// Parse decodes a scenario from YAML.
func Parse(data []byte, base config.Config) (*Scenario, error) {
	cfg := base
	sc := &Scenario{Config: &cfg}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if sc.Config == nil {
		sc.Config = &cfg
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(sc.Events, func(i, j int) bool {
		return sc.Events[i].At < sc.Events[j].At
	})
	return sc, nil
}

// Validate checks the scenario without loading its page.
func (s *Scenario) Validate() error {
	if (s.Page == "") == (s.Markup == "") {
		return errors.New("scenario needs exactly one of page or markup")
	}
	if s.Settle < 0 {
		return errors.New("settle must not be negative")
	}
	for i, e := range s.Events {
		if e.At < 0 {
			return fmt.Errorf("event %d: negative time %s", i, e.At)
		}
		if (e.Enter != nil) == e.Resize {
			return fmt.Errorf("event %d: set exactly one of enter or resize", i)
		}
	}
	if s.Config != nil {
		if err := s.Config.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PagePath returns the resolved page path, or "" for inline markup.
func (s *Scenario) PagePath() string {
	if s.Page == "" || filepath.IsAbs(s.Page) || s.dir == "" {
		return s.Page
	}
	return filepath.Join(s.dir, s.Page)
}
