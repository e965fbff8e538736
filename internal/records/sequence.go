package records

import (
	"fmt"
	"strconv"
	"strings"

	"schoolPortal/internal/storage"
)

// SequenceSuffix is appended to a collection key to name its high-water
// mark.
const SequenceSuffix = "-seq"

// Sequence is a Collection whose records carry integer ids assigned on
// insert. Ids grow strictly and are never handed out twice, even after the
// highest record is deleted: the largest id ever seen is kept under
// Key()+SequenceSuffix.
type Sequence[T any] struct {
	*Collection[int, T]
	setID func(*T, int)
}

func NewSequence[T any](kv storage.KV, key string, idOf func(T) int, setID func(*T, int)) *Sequence[T] {
	return &Sequence[T]{
		Collection: NewCollection[int, T](kv, key, idOf),
		setID:      setID,
	}
}

// Insert assigns the next id to rec, appends it and returns the id.
func (s *Sequence[T]) Insert(rec T) (int, error) {
	items, err := s.All()
	if err != nil {
		return 0, err
	}
	mark, err := s.highWaterMark()
	if err != nil {
		return 0, err
	}

	id := max(maxID(items, s.idOf), mark) + 1
	s.setID(&rec, id)

	// The collection is written first: if the mark write fails the new id
	// is still visible to the next max() scan.
	if err := s.Collection.Save(append(items, rec)); err != nil {
		return 0, err
	}
	if err := s.setHighWaterMark(id); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes the record and keeps the mark at or above its id.
func (s *Sequence[T]) Delete(id int) (bool, error) {
	items, err := s.All()
	if err != nil {
		return false, err
	}
	ok, err := s.Collection.Delete(id)
	if err != nil || !ok {
		return ok, err
	}
	return true, s.raiseHighWaterMark(maxID(items, s.idOf))
}

// DeleteFirst removes the first match and keeps the mark at or above the
// largest id present before the removal.
func (s *Sequence[T]) DeleteFirst(match func(T) bool) (T, bool, error) {
	var zero T
	items, err := s.All()
	if err != nil {
		return zero, false, err
	}
	item, ok, err := s.Collection.DeleteFirst(match)
	if err != nil || !ok {
		return item, ok, err
	}
	return item, true, s.raiseHighWaterMark(maxID(items, s.idOf))
}

// Save replaces the collection. Ids that disappear still count towards the
// mark.
func (s *Sequence[T]) Save(items []T) error {
	before, err := s.All()
	if err != nil {
		return err
	}
	if err := s.Collection.Save(items); err != nil {
		return err
	}
	return s.raiseHighWaterMark(maxID(before, s.idOf))
}

func (s *Sequence[T]) seqKey() string { return s.key + SequenceSuffix }

func (s *Sequence[T]) highWaterMark() (int, error) {
	raw, ok, err := s.kv.Get(s.seqKey())
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.seqKey(), err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		if err == nil {
			err = fmt.Errorf("negative mark %d", n)
		}
		return 0, &CorruptStoreError{Key: s.seqKey(), Err: err}
	}
	return n, nil
}

func (s *Sequence[T]) setHighWaterMark(n int) error {
	if err := s.kv.Set(s.seqKey(), strconv.Itoa(n)); err != nil {
		return fmt.Errorf("write %s: %w", s.seqKey(), err)
	}
	return nil
}

func (s *Sequence[T]) raiseHighWaterMark(n int) error {
	mark, err := s.highWaterMark()
	if err != nil {
		return err
	}
	if n <= mark {
		return nil
	}
	return s.setHighWaterMark(n)
}

func maxID[T any](items []T, idOf func(T) int) int {
	m := 0
	for _, item := range items {
		m = max(m, idOf(item))
	}
	return m
}
