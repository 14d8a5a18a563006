package group

import "encoding/json"

// Optional records whether a JSON field was absent, explicitly null, or carried a value.
// Decoding only touches fields present in the payload, so the zero value means absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

// Null returns an Optional that was supplied as JSON null.
func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

// Present reports whether a non-null value was supplied.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// assignNullable applies o to a nullable column: absent keeps, null clears, value sets.
func assignNullable[T any](dst **T, o Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}

// assignRequired applies o to a NOT NULL column; null is treated like absent.
func assignRequired[T any](dst *T, o Optional[T]) {
	if o.Present() {
		*dst = o.Value
	}
}
