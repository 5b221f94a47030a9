// Package patch provides field wrappers for partial updates.
package patch

import "encoding/json"

// Nullable is a patch field for a nullable column. It distinguishes three
// states when decoded from JSON: key absent (Set=false), explicit null
// (Set=true, Valid=false) and a value (Set=true, Valid=true).
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Value returns a Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a Nullable that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Ptr returns nil for null, otherwise a pointer to a copy of the value.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		var zero T
		n.Valid = false
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
