package scenario_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: sorted
markup: "<html/>"
config:
  timing:
    fade: 300ms
events:
  - at: 2s
    resize: true
  - at: 0
    enter: {step: 1}
  - at: 500ms
    enter: {instance: a, step: 2}
`), config.Default())
	require.NoError(t, err)

	assert.Equal(t, "sorted", sc.Name)
	require.Len(t, sc.Events, 3)
	assert.Equal(t, "enter 1", sc.Events[0].Action())
	assert.Equal(t, "enter a/2", sc.Events[1].Action())
	assert.Equal(t, "resize", sc.Events[2].Action())
	assert.Equal(t, 500*time.Millisecond, sc.Events[1].At.Std())

	// Overrides apply on top of the base configuration.
	assert.Equal(t, 300*time.Millisecond, sc.Config.Timing.Fade.Std())
	assert.Equal(t, 100*time.Millisecond, sc.Config.Timing.Grace.Std())
	assert.True(t, sc.Config.Transition.CancelStale)
	assert.Equal(t, "", sc.PagePath())
}

func TestParse_BaseConfig(t *testing.T) {
	base := config.Default()
	base.Transition.CancelStale = false

	sc, err := scenario.Parse([]byte("markup: <html/>\nevents: []\n"), base)
	require.NoError(t, err)
	assert.False(t, sc.Config.Transition.CancelStale)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no page", "events: []"},
		{"page and markup", "page: a.xhtml\nmarkup: <html/>"},
		{"two actions", "markup: <html/>\nevents:\n  - at: 0s\n    resize: true\n    enter: {step: 0}"},
		{"no action", "markup: <html/>\nevents:\n  - at: 0s"},
		{"negative time", "markup: <html/>\nevents:\n  - at: -1s\n    resize: true"},
		{"bad duration", "markup: <html/>\nevents:\n  - at: soon\n    resize: true"},
		{"bad config", "markup: <html/>\nconfig:\n  layout:\n    min_text_percent: 200"},
		{"not yaml", "events: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.yaml), config.Default())
			assert.Error(t, err)
		})
	}
}

func TestLoad_ResolvesPage(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "harbour.yaml"), config.Default())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "harbour.xhtml"), sc.PagePath())
	assert.Equal(t, time.Second, sc.Settle.Std())

	_, err = scenario.Load(filepath.Join("testdata", "missing.yaml"), config.Default())
	assert.Error(t, err)
}
