package schema

import (
	"reflect"
	"strconv"
)

// DeepConcat combines the outputs of several validators into one value.
//
// Nil values are skipped. Scalars must all be identical. String-keyed maps are
// combined key by key and lists index by index, recursing into each position;
// the result is always a fresh map[string]any or []any. A map combined with a
// list sees the list as a map keyed by index ("0", "1", ...) and yields a map.
// Values that cannot be combined yield ErrTypeMismatch.
func DeepConcat(values ...any) (any, error) {
	present := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			present = append(present, v)
		}
	}

	switch len(present) {
	case 0:
		return nil, nil
	case 1:
		return present[0], nil
	}

	base := present[0]
	if _, ok := asMap(base); ok {
		return concatMaps(present)
	}
	if l, ok := asList(base); ok {
		return concatLists(l, present)
	}

	for _, v := range present[1:] {
		if !identical(v, base) {
			return nil, ErrTypeMismatch
		}
	}
	return base, nil
}

func concatMaps(values []any) (any, error) {
	keys := make(map[string][]any)
	for _, v := range values {
		m, ok := asMap(v)
		if !ok {
			l, isList := asList(v)
			if !isList {
				return nil, ErrTypeMismatch
			}
			m = indexMap(l)
		}
		for key, val := range m {
			if val == nil {
				continue
			}
			keys[key] = append(keys[key], val)
		}
	}

	out := make(map[string]any, len(keys))
	for key, vals := range keys {
		combined, err := DeepConcat(vals...)
		if err != nil {
			return nil, err
		}
		out[key] = combined
	}
	return out, nil
}

func concatLists(base []any, values []any) (any, error) {
	lists := make([][]any, 0, len(values))
	lists = append(lists, base)
	size := len(base)
	for _, v := range values[1:] {
		l, ok := asList(v)
		if !ok {
			if _, isMap := asMap(v); isMap {
				return concatMaps(values)
			}
			return nil, ErrTypeMismatch
		}
		lists = append(lists, l)
		size = max(size, len(l))
	}

	out := make([]any, size)
	for i := range size {
		vals := make([]any, 0, len(lists))
		for _, l := range lists {
			if i < len(l) {
				vals = append(vals, l[i])
			}
		}
		combined, err := DeepConcat(vals...)
		if err != nil {
			return nil, err
		}
		out[i] = combined
	}
	return out, nil
}

// indexMap views a list as a map keyed by decimal index.
func indexMap(l []any) map[string]any {
	m := make(map[string]any, len(l))
	for i, v := range l {
		m[strconv.Itoa(i)] = v
	}
	return m
}

// asMap views any string-keyed map as map[string]any.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}

	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

// asList views any slice or array as []any.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}

	l := make([]any, rv.Len())
	for i := range l {
		l[i] = rv.Index(i).Interface()
	}
	return l, true
}
