package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderer(t *testing.T) {
	render, err := NewPlainRenderer()
	require.NoError(t, err)

	out, err := render("# Timeline\n\n| t | step |\n|---|---|\n| 0s | 1 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Timeline")
	assert.Contains(t, out, "0s")
}

func TestRenderer(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)

	out, err := render("Some **bold** text")
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0\n")

	out := buf.String()
	assert.Contains(t, out, "v0.1.0")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
}
