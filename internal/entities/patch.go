package entities

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field for a nullable column. Set distinguishes
// "absent from the request" from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf returns a Nullable holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a Nullable that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload.
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

// Columns collects the column assignments of a patch. Only fields that were
// set end up in the map handed to the ORM.
type Columns map[string]any

func setIf[V any](cols Columns, column string, v *V) {
	if v != nil {
		cols[column] = *v
	}
}

func setNullable[V any](cols Columns, column string, v Nullable[V]) {
	if !v.Set {
		return
	}
	if v.Value == nil {
		cols[column] = nil
		return
	}
	cols[column] = *v.Value
}

// Patch is implemented by every XPatch type.
type Patch interface {
	Columns() Columns
}

// Slugged is implemented by entities carrying a unique slug derived from a
// human readable title or name.
type Slugged interface {
	SlugSource() string
	GetSlug() string
	SetSlug(slug string)
}

// SluggedPatch is the patch-side counterpart of Slugged.
type SluggedPatch interface {
	Patch
	SlugSource() *string
	GetSlug() *string
	SetSlug(slug string)
}
