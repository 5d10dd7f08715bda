package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRenderer_RecordsVisibility(t *testing.T) {
	doc := testutils.ParsePage(t, testutils.Story("story"))
	maps := memory.NewMapRenderer(doc)
	ctx := context.Background()

	require.NoError(t, maps.RenderMap(ctx, "story-map", 1, 2, 3))

	container := doc.ByID("story-map")
	container.SetStyle("display", "block")
	container.SetStyle("opacity", "1")
	require.NoError(t, maps.RenderMap(ctx, "story-map", 4, 5, 6))

	renders := maps.Renders()
	require.Len(t, renders, 2)
	assert.False(t, renders[0].Visible, "hidden container measured")
	assert.True(t, renders[1].Visible)
	assert.Equal(t, memory.MapRender{ContainerID: "story-map", Lat: 4, Lng: 5, Zoom: 6, Visible: true}, renders[1])

	assert.Len(t, container.FindAll("map-attribution"), 1, "attribution injected once")
}

func TestMapRenderer_Failure(t *testing.T) {
	maps := memory.NewMapRenderer(nil)
	maps.FailWith(errors.New("tiles unavailable"))

	err := maps.RenderMap(context.Background(), "x", 0, 0, 1)
	assert.EqualError(t, err, "tiles unavailable")
	assert.Empty(t, maps.Renders())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, maps.RenderMap(ctx, "x", 0, 0, 1), context.Canceled)

	maps.InvalidateSize()
	maps.InvalidateSize()
	assert.Equal(t, 2, maps.Invalidations())
}

func TestScrollDetector(t *testing.T) {
	det := memory.NewScrollDetector()
	assert.False(t, det.Enter("story", 0), "no handler yet")
	assert.Error(t, det.Setup(0.5, nil))

	var got []int
	require.NoError(t, det.Setup(0.65, func(instance string, index int) {
		assert.Equal(t, "story", instance)
		got = append(got, index)
	}))

	assert.True(t, det.Enter("story", 3))
	assert.True(t, det.Enter("story", 4))
	det.Resize()

	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, 0.65, det.Offset())
	assert.Equal(t, 1, det.Resizes())
}
