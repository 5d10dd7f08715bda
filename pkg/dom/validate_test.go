package dom_test

import (
	"testing"

	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidate_WellFormed(t *testing.T) {
	doc := testutils.ParsePage(t, testutils.Story("one"), testutils.Story("two"))
	assert.NoError(t, dom.Validate(doc))
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	markup := `<html><body>
<section class="scrolly" id="broken">
  <div class="steps">
    <div class="step" data-step="0" data-content-type="chart" data-file-path="x.svg"/>
    <div class="step" data-step="1" data-content-type="map"/>
    <div class="step" data-step="1" data-content-type="image" data-file-path="a.jpg"/>
  </div>
  <div class="sticky">
    <div class="image-container"/>
    <div class="map-container"/>
  </div>
</section>
<div class="step" data-step="9"/>
</body></html>`
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)

	err = dom.Validate(doc)
	require.Error(t, err)

	errs := multierr.Errors(err)
	// missing video container, img, map id, unknown type, map without coords,
	// duplicate index, orphan step
	assert.Len(t, errs, 7)
	assert.ErrorIs(t, err, domain.ErrIncompleteSticky)
	assert.ErrorIs(t, err, domain.ErrUnknownContentType)
	assert.ErrorIs(t, err, domain.ErrNoInstance)
}

func TestValidate_NoInstance(t *testing.T) {
	doc, err := dom.ParseString(`<html><body/></html>`)
	require.NoError(t, err)
	assert.ErrorIs(t, dom.Validate(doc), domain.ErrNoInstance)
}
