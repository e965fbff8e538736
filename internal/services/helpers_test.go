package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	kv     *storage.MemoryStore
	clock  *fakeClock
	logs   *bytes.Buffer
	portal *Portal
}

// newFixture returns a seeded portal over an in-memory store.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newEmptyFixture(t)
	require.NoError(t, f.portal.Initialize())
	return f
}

// newEmptyFixture returns a portal with nothing stored yet.
func newEmptyFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		kv:    storage.NewMemoryStore(),
		clock: newFakeClock(),
		logs:  &bytes.Buffer{},
	}
	f.portal = NewPortal(f.kv, f.clock.Now, logging.NewLogger("DEBUG", f.logs))
	return f
}
