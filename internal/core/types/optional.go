package types

import (
	"bytes"
	"encoding/json"
)

// Opt holds a value that the backend may omit or send as null.
// The zero value is None.
type Opt[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// FromPtr maps nil to None and anything else to Some(*p).
func FromPtr[T any](p *T) Opt[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Opt[T]) IsSome() bool { return o.ok }

// Or returns the value, or def when absent.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// OrZero returns the value or T's zero value.
func (o Opt[T]) OrZero() T {
	return o.value
}

// Ptr returns a pointer to a copy of the value, or nil.
func (o Opt[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// MarshalJSON encodes None as null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as None.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
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
