package metadata

// Values holds a metadata field that is null, a single scalar, or an
// ordered list. Stacking turns scalars into lists.
type Values[T any] struct {
	items []T
	list  bool
}

// Null returns an empty field.
func Null[T any]() Values[T] {
	return Values[T]{}
}

// Scalar returns a field holding the single value v.
func Scalar[T any](v T) Values[T] {
	return Values[T]{items: []T{v}}
}

// List returns a list-valued field. List() with no arguments is an empty list, not null.
func List[T any](vs ...T) Values[T] {
	items := make([]T, len(vs))
	copy(items, vs)
	return Values[T]{items: items, list: true}
}

// IsNull reports whether the field holds no value.
func (v Values[T]) IsNull() bool {
	return !v.list && len(v.items) == 0
}

// IsList reports whether the field holds a list.
func (v Values[T]) IsList() bool {
	return v.list
}

// Len returns the number of values held.
func (v Values[T]) Len() int {
	return len(v.items)
}

// Items returns a copy of the values held, scalar or list.
func (v Values[T]) Items() []T {
	if len(v.items) == 0 {
		return nil
	}
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Scalar returns the value of a scalar field.
func (v Values[T]) Scalar() (T, bool) {
	var zero T
	if v.list || len(v.items) != 1 {
		return zero, false
	}
	return v.items[0], true
}

// Single returns the value of a scalar field or a one-element list.
func (v Values[T]) Single() (T, bool) {
	var zero T
	if len(v.items) != 1 {
		return zero, false
	}
	return v.items[0], true
}

// Any returns the field as nil, a T, or a []T.
func (v Values[T]) Any() any {
	switch {
	case v.IsNull():
		return nil
	case v.list:
		return v.Items()
	default:
		return v.items[0]
	}
}

// concat appends other to v; the result is always a list unless both are null.
func concat[T any](a, b Values[T]) Values[T] {
	if a.IsNull() && b.IsNull() {
		return Values[T]{}
	}
	items := make([]T, 0, len(a.items)+len(b.items))
	items = append(items, a.items...)
	items = append(items, b.items...)
	return Values[T]{items: items, list: true}
}

// union is concat with duplicates removed, first occurrence wins.
func union[T comparable](a, b Values[T]) Values[T] {
	if a.IsNull() && b.IsNull() {
		return Values[T]{}
	}
	seen := make(map[T]struct{}, len(a.items)+len(b.items))
	items := make([]T, 0, len(a.items)+len(b.items))
	for _, v := range append(append([]T{}, a.items...), b.items...) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		items = append(items, v)
	}
	return Values[T]{items: items, list: true}
}
