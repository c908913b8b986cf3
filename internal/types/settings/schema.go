package settings

import (
	"fmt"
	"sort"
	"strings"

	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Kind is the value type of a provider setting
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
)

// RedactedValue replaces secret values in anything that leaves the process
const RedactedValue = "********"

// Definition describes one provider setting as it is shown on the settings form
type Definition struct {
	Key         string `json:"key"`
	SortOrder   int    `json:"sort_order"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Kind        Kind   `json:"kind"`
	Secret      bool   `json:"secret,omitempty"`
}

// Schema is the explicit list of settings a provider accepts.
// It is built once when the provider registers and is read-only afterwards.
type Schema struct {
	definitions map[string]Definition
}

// NewSchema builds a schema, rejecting duplicate keys (case-insensitive)
func NewSchema(definitions ...Definition) (*Schema, error) {
	s := &Schema{definitions: make(map[string]Definition, len(definitions))}
	for _, def := range definitions {
		if def.Key == "" {
			return nil, ierr.NewError("setting key is required").
				Mark(ierr.ErrValidation)
		}
		if _, exists := s.lookup(def.Key); exists {
			return nil, ierr.NewErrorf("duplicate setting key: %s", def.Key).
				Mark(ierr.ErrAlreadyExists)
		}
		if def.Kind == "" {
			def.Kind = KindString
		}
		s.definitions[def.Key] = def
	}
	return s, nil
}

// MustNewSchema is NewSchema for package level provider declarations
func MustNewSchema(definitions ...Definition) *Schema {
	s, err := NewSchema(definitions...)
	if err != nil {
		panic(fmt.Sprintf("invalid settings schema: %v", err))
	}
	return s
}

func (s *Schema) lookup(key string) (Definition, bool) {
	if def, ok := s.definitions[key]; ok {
		return def, true
	}
	for k, def := range s.definitions {
		if strings.EqualFold(k, key) {
			return def, true
		}
	}
	return Definition{}, false
}

// Has checks if a setting key is part of the schema
func (s *Schema) Has(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

// Sorted returns the definitions in display order, ties broken by key
func (s *Schema) Sorted() []Definition {
	defs := make([]Definition, 0, len(s.definitions))
	for _, def := range s.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].SortOrder != defs[j].SortOrder {
			return defs[i].SortOrder < defs[j].SortOrder
		}
		return defs[i].Key < defs[j].Key
	})
	return defs
}

// Redact returns a copy of raw with the values of secret settings masked.
// Empty secrets stay empty so callers can tell a missing token apart.
func (s *Schema) Redact(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		def, ok := s.lookup(k)
		if ok && def.Secret && fmt.Sprint(v) != "" {
			out[k] = RedactedValue
			continue
		}
		out[k] = v
	}
	return out
}

// Decode converts raw settings into T. Keys are matched case-insensitively
// against the `setting` struct tags of T, strings are coerced to the field
// types ("true" -> true) and keys unknown to the schema are rejected.
func Decode[T any](s *Schema, raw map[string]any) (T, error) {
	var result T

	for k := range raw {
		if !s.Has(k) {
			return result, ierr.NewErrorf("unknown setting: %s", k).
				WithHintf("Setting %q is not supported by this provider", k).
				Mark(ierr.ErrValidation)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &result,
		TagName:          "setting",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return result, ierr.WithError(err).
			WithHint("Failed to prepare settings decoder").
			Mark(ierr.ErrSystem)
	}

	if err := decoder.Decode(raw); err != nil {
		return result, ierr.WithError(err).
			WithHint("Invalid provider settings").
			Mark(ierr.ErrValidation)
	}

	return result, nil
}
