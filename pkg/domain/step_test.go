package domain_test

import (
	"testing"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFitFor(t *testing.T) {
	assert.Equal(t, domain.FitContain, domain.FitFor("Vertical"))
	assert.Equal(t, domain.FitContain, domain.FitFor(" VERTICAL "))
	assert.Equal(t, domain.FitCover, domain.FitFor("horizontal"))
	assert.Equal(t, domain.FitCover, domain.FitFor(""))
	assert.Equal(t, domain.FitCover, domain.FitFor("diagonal"))
}

func TestParseContentType(t *testing.T) {
	assert.Equal(t, domain.ContentMap, domain.ParseContentType(" Map "))
	assert.True(t, domain.ParseContentType("VIDEO").Known())
	assert.False(t, domain.ParseContentType("chart").Known())
}

func TestStepDescriptor_ZoomLevel(t *testing.T) {
	zoom := 2.5
	withZoom := domain.StepDescriptor{Zoom: &zoom}
	assert.Equal(t, 2.5, withZoom.ZoomLevel(10))
	assert.Equal(t, 10.0, domain.StepDescriptor{}.ZoomLevel(10))
	assert.False(t, domain.StepDescriptor{}.HasCoordinates())
}
