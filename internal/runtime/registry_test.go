package runtime_test

import (
	"testing"

	"github.com/aretw0/scrolly/internal/runtime"
	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveContainers_InstanceScoped(t *testing.T) {
	doc := testutils.ParsePage(t, testutils.Story("one"), testutils.Story("two"))

	instOne, one, err := runtime.ResolveContainers(doc.Step("one", 5))
	require.NoError(t, err)
	instTwo, two, err := runtime.ResolveContainers(doc.Step("two", 5))
	require.NoError(t, err)

	assert.Equal(t, "one", instOne.ID())
	assert.Equal(t, "two", instTwo.ID())
	assert.Equal(t, "one-map", one.Map.ID())
	assert.Equal(t, "two-map", two.Map.ID())
	assert.False(t, one.Image.Same(two.Image))
	assert.True(t, one.For(domain.ContentVideo).Same(one.Video))
	assert.Nil(t, one.For("chart"))
}

func TestResolveContainers_Malformed(t *testing.T) {
	t.Run("No Instance", func(t *testing.T) {
		doc, err := dom.ParseString(`<div><div class="step" data-step="0"/></div>`)
		require.NoError(t, err)

		_, _, err = runtime.ResolveContainers(doc.Find(dom.ClassStep))
		assert.ErrorIs(t, err, domain.ErrNoInstance)
	})

	t.Run("Missing Video Container", func(t *testing.T) {
		doc, err := dom.ParseString(`<section class="scrolly" id="s">
  <div class="steps"><div class="step" data-step="0"/></div>
  <div class="sticky"><div class="image-container"/><div class="map-container" id="m"/></div>
</section>`)
		require.NoError(t, err)

		inst, c, err := runtime.ResolveContainers(doc.Find(dom.ClassStep))
		assert.ErrorIs(t, err, domain.ErrIncompleteSticky)
		assert.Equal(t, "s", inst.ID())
		assert.NotNil(t, c.Image)
		assert.Nil(t, c.Video)
		assert.False(t, c.Complete())
	})

	t.Run("Missing Sticky", func(t *testing.T) {
		doc, err := dom.ParseString(`<section class="scrolly"><div class="steps"><div class="step" data-step="0"/></div></section>`)
		require.NoError(t, err)

		_, _, err = runtime.ResolveContainers(doc.Find(dom.ClassStep))
		assert.ErrorIs(t, err, domain.ErrIncompleteSticky)
	})
}
