package entity

import (
	"bytes"
	"encoding/json"
)

// Nullable - поле частичного обновления. Set=false: поля не было в запросе,
// Set=true и Value=nil: пришёл null, значение нужно сбросить.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NewNullable - заданное значение
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null - явный сброс значения
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Apply записывает значение в dst, если поле пришло
func (n Nullable[T]) Apply(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}
