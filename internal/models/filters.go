package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FilterField names a record field usable with exact-match filtering.
type FilterField string

const (
	FilterCourse FilterField = "curso"
	FilterStatus FilterField = "status"
	FilterDegree FilterField = "formacao"
)

// ErrUnknownField is returned for filter fields a registry does not know and
// for patch documents carrying fields the entity does not have.
var ErrUnknownField = errors.New("unknown field")

// DecodePatch reads a JSON patch document into P, rejecting unknown fields.
func DecodePatch[P any](data []byte) (P, error) {
	var patch P
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return patch, fmt.Errorf("%w %s", ErrUnknownField, name)
		}
		return patch, fmt.Errorf("invalid patch: %w", err)
	}
	return patch, nil
}
