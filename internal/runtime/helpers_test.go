package runtime_test

import (
	"testing"

	"github.com/aretw0/scrolly/internal/runtime"
	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/scheduler"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	engine *runtime.Engine
	doc    *dom.Document
	clock  *scheduler.Manual
	maps   *memory.MapRenderer
}

func newFixture(t *testing.T, cfg config.Config, instances ...testutils.Instance) *fixture {
	t.Helper()

	if len(instances) == 0 {
		instances = []testutils.Instance{testutils.Story("story")}
	}
	doc := testutils.ParsePage(t, instances...)
	f := &fixture{
		doc:   doc,
		clock: scheduler.NewManual(),
		maps:  memory.NewMapRenderer(doc),
	}
	f.engine = runtime.NewEngine(doc,
		runtime.WithConfig(cfg),
		runtime.WithScheduler(f.clock),
		runtime.WithMapRenderer(f.maps),
		runtime.WithSessionID("test"),
	)
	t.Cleanup(f.engine.Close)
	return f
}

func (f *fixture) enter(t *testing.T, instance string, index int) {
	t.Helper()
	step := f.doc.Step(instance, index)
	require.NotNil(t, step, "fixture has no step %s/%d", instance, index)
	f.engine.OnStepEnter(step)
}

func (f *fixture) markup(t *testing.T) string {
	t.Helper()
	out, err := f.doc.String()
	require.NoError(t, err)
	return out
}

func (f *fixture) containers(t *testing.T, instance string) runtime.Containers {
	t.Helper()
	_, c, err := runtime.ResolveContainers(f.doc.Step(instance, 0))
	require.NoError(t, err)
	return c
}
