// Package optional provides Value, an explicit present-or-absent wrapper for
// record fields that may be missing.
//
// An absent Value reports IsZero, so struct fields tagged `json:",omitzero"`
// are left out of the encoded record entirely. A JSON null decodes as absent.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds either a value of type T or nothing.
type Value[T any] struct {
	v  T
	ok bool
}

// Some returns a present Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// NonEmpty returns Some(s) for a non-empty string and None otherwise.
func NonEmpty(s string) Value[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

func (o Value[T]) Get() (T, bool) { return o.v, o.ok }

func (o Value[T]) IsPresent() bool { return o.ok }

func (o Value[T]) IsZero() bool { return !o.ok }

// OrElse returns the held value, or def when absent.
func (o Value[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.v
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
