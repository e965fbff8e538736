package services

import (
	"fmt"
	"strings"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/records"
)

// Patch is a partial update for T.
type Patch[T any] interface {
	Apply(*T)
}

// PersonStats summarises a person registry.
type PersonStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"porStatus"`
	ByGroup  map[string]int `json:"porGrupo"`
}

// personKind describes how a registry reads its records.
type personKind[T any] struct {
	entity          string
	role            models.Role
	defaultPassword string
	statuses        []string
	identity        func(T) (name, email string)
	searchable      func(T) []string
	field           func(T, models.FilterField) (string, bool)
	group           func(T) string
	status          func(T) string
}

// registry is the engine shared by students and teachers: every person owns
// a login account linked by email.
type registry[T any, P Patch[T]] struct {
	records *records.Sequence[T]
	users   *UserDirectory
	kind    personKind[T]
	log     *logging.Logger
}

// add stores rec and then creates its login account. The two writes are not
// atomic: if the account write fails rec stays stored and the returned id
// is still valid alongside ErrAccountNotCreated.
func (r *registry[T, P]) add(rec T, password string) (int, error) {
	id, err := r.records.Insert(rec)
	if err != nil {
		return 0, err
	}

	if password == "" {
		password = r.kind.defaultPassword
	}
	name, email := r.kind.identity(rec)
	if _, err := r.users.Create(models.NewUser{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     r.kind.role,
	}); err != nil {
		r.log.WithFields(map[string]interface{}{
			"entity": r.kind.entity,
			"id":     id,
			"email":  email,
		}).WithError(err).Error("Failed to create linked user")
		return id, fmt.Errorf("%w: %v", ErrAccountNotCreated, err)
	}

	return id, nil
}

func (r *registry[T, P]) All() ([]T, error) {
	return r.records.All()
}

func (r *registry[T, P]) Get(id int) (T, bool, error) {
	return r.records.Get(id)
}

func (r *registry[T, P]) Update(id int, patch P) (bool, error) {
	return r.records.Update(id, patch.Apply)
}

// Remove deletes the person and then, best effort, its login account. A
// missing or undeletable account is logged and never fails the call.
func (r *registry[T, P]) Remove(id int) (bool, error) {
	rec, ok, err := r.records.Get(id)
	if err != nil || !ok {
		return false, err
	}
	if ok, err := r.records.Delete(id); err != nil || !ok {
		return ok, err
	}

	_, email := r.kind.identity(rec)
	entry := r.log.WithFields(map[string]interface{}{
		"entity": r.kind.entity,
		"id":     id,
		"email":  email,
	})
	removed, err := r.users.DeleteByEmail(email)
	switch {
	case err != nil:
		entry.WithError(err).Warn("Could not remove linked user")
	case !removed:
		entry.Warn("No linked user to remove")
	}
	return true, nil
}

// Search matches query case-insensitively as a substring of the searchable
// fields. A blank query returns everything.
func (r *registry[T, P]) Search(query string) ([]T, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return r.records.All()
	}
	return r.records.Filter(func(rec T) bool {
		for _, v := range r.kind.searchable(rec) {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
		return false
	})
}

// FilterByField keeps records whose field equals value exactly. An empty
// value returns everything.
func (r *registry[T, P]) FilterByField(field models.FilterField, value string) ([]T, error) {
	var zero T
	if _, ok := r.kind.field(zero, field); !ok {
		return nil, fmt.Errorf("%w %q for %s", models.ErrUnknownField, field, r.kind.entity)
	}
	if value == "" {
		return r.records.All()
	}
	return r.records.Filter(func(rec T) bool {
		v, _ := r.kind.field(rec, field)
		return v == value
	})
}

func (r *registry[T, P]) Stats() (PersonStats, error) {
	all, err := r.records.All()
	if err != nil {
		return PersonStats{}, err
	}

	stats := PersonStats{
		Total:    len(all),
		ByStatus: make(map[string]int, len(r.kind.statuses)),
		ByGroup:  make(map[string]int),
	}
	for _, s := range r.kind.statuses {
		stats.ByStatus[s] = 0
	}
	for _, rec := range all {
		stats.ByStatus[r.kind.status(rec)]++
		stats.ByGroup[r.kind.group(rec)]++
	}
	return stats, nil
}
