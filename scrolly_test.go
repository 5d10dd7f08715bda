package scrolly_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_Integration(t *testing.T) {
	doc := testutils.ParsePage(t, testutils.Story("story"))
	clock := scheduler.NewManual()
	maps := memory.NewMapRenderer(doc)
	detector := memory.NewScrollDetector()

	eng, err := scrolly.New(doc,
		scrolly.WithScheduler(clock),
		scrolly.WithMapRenderer(maps),
		scrolly.WithScrollDetector(detector),
		scrolly.WithStrict(true),
	)
	require.NoError(t, err)
	defer eng.Close()

	_, err = uuid.Parse(eng.ID())
	assert.NoError(t, err, "default session ID is a UUID")
	assert.Equal(t, 0.65, detector.Offset(), "New registers with the detector")

	detector.Enter("story", 0)
	clock.Advance(600 * time.Millisecond)
	assert.Equal(t, []domain.ContentType{domain.ContentImage}, eng.Snapshot().VisibleContent())

	require.NoError(t, eng.EnterStep("story", 5))
	clock.Advance(700 * time.Millisecond)
	snap := eng.Snapshot()
	assert.Equal(t, eng.ID(), snap.SessionID)
	assert.Equal(t, 5, snap.ActiveStep)
	assert.Equal(t, "Map of Lisbon", snap.MapLabel)
	require.Len(t, maps.Renders(), 1)

	eng.Resize()
	assert.Equal(t, 1, detector.Resizes())
	assert.Equal(t, 1, maps.Invalidations())

	markup, err := eng.Markup()
	require.NoError(t, err)
	assert.Contains(t, markup, `aria-label="Map of Lisbon"`)
	assert.Contains(t, markup, "scrolly-attribution")
}

func TestFacade_EnterStepNotFound(t *testing.T) {
	eng, err := scrolly.New(testutils.ParsePage(t, testutils.Story("story")))
	require.NoError(t, err)
	defer eng.Close()

	err = eng.EnterStep("story", 42)
	assert.ErrorIs(t, err, domain.ErrStepNotFound)

	err = eng.EnterStep("elsewhere", 0)
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
	assert.Equal(t, -1, eng.Snapshot().ActiveStep)
}

func TestFacade_Strict(t *testing.T) {
	doc, err := dom.ParseString(`<section class="scrolly" id="s"><div class="steps"><div class="step" data-step="0"/></div></section>`)
	require.NoError(t, err)

	_, err = scrolly.New(doc, scrolly.WithStrict(true))
	assert.Error(t, err)

	eng, err := scrolly.New(doc)
	require.NoError(t, err, "lenient mode accepts any page")
	eng.Close()
}

func TestFacade_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.MinTextPercent = 150

	_, err := scrolly.New(testutils.ParsePage(t, testutils.Story("story")), scrolly.WithConfig(cfg))
	assert.Error(t, err)

	_, err = scrolly.New(nil)
	assert.Error(t, err)
}

func TestFacade_Changes(t *testing.T) {
	clock := scheduler.NewManual()
	eng, err := scrolly.New(testutils.ParsePage(t, testutils.Story("story")),
		scrolly.WithScheduler(clock),
		scrolly.WithSessionID("changes"),
	)
	require.NoError(t, err)
	defer eng.Close()

	select {
	case <-eng.Changes():
		t.Fatal("no change expected before the first step")
	default:
	}

	require.NoError(t, eng.EnterStep("story", 0))
	clock.Advance(time.Second)

	select {
	case <-eng.Changes():
	default:
		t.Fatal("expected a change notification")
	}
	select {
	case <-eng.Changes():
		t.Fatal("bursts must be coalesced")
	default:
	}
}

// Timers of the real scheduler mutate the page on their own goroutines; run
// with -race to check reads are serialised against them.
func TestFacade_ConcurrentReadsWithRealTimers(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.Fade = config.Duration(time.Millisecond)
	cfg.Timing.Grace = 0
	cfg.Timing.MapBuffer = config.Duration(time.Millisecond)

	doc := testutils.ParsePage(t, testutils.Story("story"))
	eng, err := scrolly.New(doc,
		scrolly.WithConfig(cfg),
		scrolly.WithMapRenderer(memory.NewMapRenderer(doc)),
	)
	require.NoError(t, err)
	defer eng.Close()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			_, err := eng.Markup()
			assert.NoError(t, err)
			_ = eng.Snapshot()
		}
	}()

	steps := []int{0, 5, 1, 6, 7, 2}
	for i := 0; i < 60; i++ {
		require.NoError(t, eng.EnterStep("story", steps[i%len(steps)]))
		time.Sleep(time.Millisecond)
	}
	close(done)
	wg.Wait()

	assert.Eventually(t, func() bool {
		return eng.State().Pending == 0
	}, time.Second, 5*time.Millisecond)
	snap := eng.Snapshot()
	assert.Equal(t, 2, snap.ActiveStep)
	assert.Equal(t, []domain.ContentType{domain.ContentImage}, snap.VisibleContent())
}

func TestFacade_OpenAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.xhtml")
	require.NoError(t, os.WriteFile(path, []byte(testutils.PageMarkup(testutils.Story("story"))), 0644))

	eng, err := scrolly.Open(path, scrolly.WithSessionID("from-file"))
	require.NoError(t, err)
	defer eng.Close()
	assert.Equal(t, "from-file", eng.ID())
	assert.Len(t, eng.Document().Steps(), 6)

	_, err = scrolly.Open(filepath.Join(t.TempDir(), "missing.xhtml"))
	assert.Error(t, err)

	_, err = scrolly.Parse(strings.NewReader("<unclosed"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(scrolly.Version))
}
