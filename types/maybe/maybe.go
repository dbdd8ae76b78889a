package maybe

import "encoding/json"

type Maybe[T any] struct {
	value T
	valid bool
}

func Some[T any](value T) Maybe[T] {
	return Maybe[T]{
		value: value,
		valid: true,
	}
}

func None[T any]() Maybe[T] {
	return Maybe[T]{
		valid: false,
	}
}

// SqlNull builds a Maybe from the (value, valid) pair that database/sql
// null types expose.
func SqlNull[T any](value T, valid bool) Maybe[T] {
	return Maybe[T]{
		value: value,
		valid: valid,
	}
}

func (m Maybe[T]) IsValid() bool {
	return m.valid
}

func (m Maybe[T]) Value() T {
	return m.value
}

// UnmarshalJSON maps JSON null to None, anything else to Some.
func (m *Maybe[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}
