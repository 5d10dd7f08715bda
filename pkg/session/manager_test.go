package session_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/scheduler"
	"github.com/aretw0/scrolly/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineFactory(clock *scheduler.Manual) session.Factory {
	return func(id string, page io.Reader) (ports.Session, error) {
		eng, err := scrolly.Parse(page, scrolly.WithSessionID(id), scrolly.WithScheduler(clock))
		if err != nil {
			return nil, err
		}
		return eng, nil
	}
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("page-%d", n.Add(1))
	}
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clock := scheduler.NewManual()
	mgr := session.NewManager(memory.NewStore(), engineFactory(clock), session.WithIDGenerator(sequentialIDs()))

	page := testutils.PageMarkup(testutils.Story("story"))
	s, err := mgr.Create(ctx, strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "page-1", s.ID())

	err = mgr.WithSession(ctx, "page-1", func(ctx context.Context, s ports.Session) error {
		return s.EnterStep("story", 0)
	})
	require.NoError(t, err)
	clock.Advance(time.Second)

	loaded, err := mgr.Load(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "harbour.jpg", loaded.Snapshot().ImageSrc)

	_, err = mgr.Create(ctx, strings.NewReader(page))
	require.NoError(t, err)
	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"page-1", "page-2"}, ids)

	require.NoError(t, mgr.Delete(ctx, "page-1"))
	_, err = mgr.Load(ctx, "page-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Delete(ctx, "page-1"), domain.ErrSessionNotFound)

	require.NoError(t, mgr.Close(ctx))
	ids, err = mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestManager_CreateRejectsBadPage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	mgr := session.NewManager(store, engineFactory(scheduler.NewManual()))

	_, err := mgr.Create(ctx, strings.NewReader("<not-closed>"))
	assert.Error(t, err)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestManager_WithSessionPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), engineFactory(scheduler.NewManual()),
		session.WithIDGenerator(func() string { return "only" }))

	_, err := mgr.Create(ctx, strings.NewReader(testutils.PageMarkup(testutils.Story("story"))))
	require.NoError(t, err)

	err = mgr.WithSession(ctx, "only", func(ctx context.Context, s ports.Session) error {
		return s.EnterStep("story", 99)
	})
	assert.ErrorIs(t, err, domain.ErrStepNotFound)

	err = mgr.WithSession(ctx, "missing", func(context.Context, ports.Session) error {
		t.Fatal("fn must not run for a missing session")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = mgr.WithSession(cancelled, "only", func(context.Context, ports.Session) error { return nil })
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestManager_SerialisesPerSession(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), engineFactory(scheduler.NewManual()),
		session.WithIDGenerator(func() string { return "busy" }))
	_, err := mgr.Create(ctx, strings.NewReader(testutils.PageMarkup(testutils.Story("story"))))
	require.NoError(t, err)

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.WithSession(ctx, "busy", func(context.Context, ports.Session) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}
