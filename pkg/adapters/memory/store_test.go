package memory_test

import (
	"testing"

	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

type fakeSession struct{ id string }

func (s fakeSession) ID() string                  { return s.id }
func (s fakeSession) EnterStep(string, int) error { return nil }
func (s fakeSession) Resize()                     {}
func (s fakeSession) Snapshot() domain.Snapshot   { return domain.Snapshot{SessionID: s.id} }
func (s fakeSession) Markup() (string, error)     { return "", nil }
func (s fakeSession) Close()                      {}

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store, func(id string) ports.Session {
		return fakeSession{id: id}
	})
}
