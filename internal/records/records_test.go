package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolPortal/internal/storage"
)

type note struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func newNotes(kv storage.KV) *Sequence[note] {
	return NewSequence(kv, "notes",
		func(n note) int { return n.ID },
		func(n *note, id int) { n.ID = id })
}

func TestAllOnAbsentKeyIsEmpty(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())

	all, err := notes.All()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestAllOnCorruptKeyFails(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set("notes", "{not json"))
	notes := newNotes(kv)

	_, err := notes.All()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptStore))

	var corrupt *CorruptStoreError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, "notes", corrupt.Key)

	_, err = notes.Insert(note{Text: "x"})
	assert.ErrorIs(t, err, ErrCorruptStore, "writes must not paper over corrupt content")

	raw, _, _ := kv.Get("notes")
	assert.Equal(t, "{not json", raw, "corrupt content is left untouched")
}

func TestInitializeIsIdempotent(t *testing.T) {
	kv := storage.NewMemoryStore()
	notes := newNotes(kv)

	wrote, err := notes.Initialize([]note{{ID: 1, Text: "seed"}})
	require.NoError(t, err)
	assert.True(t, wrote)

	_, err = notes.Insert(note{Text: "mine"})
	require.NoError(t, err)

	wrote, err = notes.Initialize([]note{{ID: 1, Text: "seed"}})
	require.NoError(t, err)
	assert.False(t, wrote)

	all, err := notes.All()
	require.NoError(t, err)
	assert.Len(t, all, 2, "second Initialize must not reset the collection")
}

func TestInitializeWithEmptySeedStillCreatesKey(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := newNotes(kv).Initialize(nil)
	require.NoError(t, err)

	raw, ok, err := kv.Get("notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestInsertStartsAtOne(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	id, err := notes.Insert(note{Text: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestInsertAfterDeletingHighestNeverReusesID(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	_, err := notes.Initialize([]note{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}})
	require.NoError(t, err)

	id, err := notes.Insert(note{Text: "fifth"})
	require.NoError(t, err)
	assert.Equal(t, 5, id)

	ok, err := notes.Delete(5)
	require.NoError(t, err)
	require.True(t, ok)

	id, err = notes.Insert(note{Text: "sixth"})
	require.NoError(t, err)
	assert.Equal(t, 6, id)
}

func TestDeletingSeededMaxBeforeAnyInsert(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	_, err := notes.Initialize([]note{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}})
	require.NoError(t, err)

	ok, err := notes.Delete(4)
	require.NoError(t, err)
	require.True(t, ok)

	id, err := notes.Insert(note{})
	require.NoError(t, err)
	assert.Equal(t, 5, id)
}

func TestInsertIDsAreStrictlyIncreasing(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())

	last := 0
	for i := 0; i < 20; i++ {
		id, err := notes.Insert(note{})
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id

		if i%3 == 0 {
			_, err := notes.Delete(id)
			require.NoError(t, err)
		}
	}
}

func TestEmptyingTheCollectionKeepsTheMark(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	for i := 0; i < 3; i++ {
		_, err := notes.Insert(note{})
		require.NoError(t, err)
	}
	require.NoError(t, notes.Save(nil))

	id, err := notes.Insert(note{})
	require.NoError(t, err)
	assert.Equal(t, 4, id)
}

func TestCorruptMarkIsReported(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set("notes-seq", "abc"))

	_, err := newNotes(kv).Insert(note{})
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestUpdate(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	id, err := notes.Insert(note{Text: "draft"})
	require.NoError(t, err)

	ok, err := notes.Update(id, func(n *note) { n.Text = "final" })
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := notes.Get(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "final", got.Text)

	ok, err = notes.Update(99, func(n *note) { n.Text = "ghost" })
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateCannotChangeID(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	id, err := notes.Insert(note{Text: "a"})
	require.NoError(t, err)

	_, err = notes.Update(id, func(n *note) { n.ID = 42 })
	require.Error(t, err)

	_, found, err := notes.Get(42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteMissingReturnsFalse(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	ok, err := notes.Delete(7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteFirstRemovesOnlyFirstMatch(t *testing.T) {
	notes := newNotes(storage.NewMemoryStore())
	_, err := notes.Initialize([]note{{ID: 1, Text: "dup"}, {ID: 2, Text: "dup"}})
	require.NoError(t, err)

	removed, ok, err := notes.DeleteFirst(func(n note) bool { return n.Text == "dup" })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, removed.ID)

	all, err := notes.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID)
}

func TestStringKeyedCollection(t *testing.T) {
	type tag struct {
		Slug string `json:"slug"`
	}
	tags := NewCollection(storage.NewMemoryStore(), "tags", func(t tag) string { return t.Slug })

	require.NoError(t, tags.Append(tag{Slug: "go"}))
	require.NoError(t, tags.Append(tag{Slug: "sql"}))

	_, found, err := tags.Get("sql")
	require.NoError(t, err)
	assert.True(t, found)

	filtered, err := tags.Filter(func(t tag) bool { return t.Slug != "go" })
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}
