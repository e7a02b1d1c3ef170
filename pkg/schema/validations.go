package schema

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Tag names a broad value category, checked by TypeFunc.
type Tag string

const (
	TagString    Tag = "string"
	TagNumber    Tag = "number"
	TagBoolean   Tag = "boolean"
	TagObject    Tag = "object"
	TagFunction  Tag = "function"
	TagBigInt    Tag = "bigint"
	TagUndefined Tag = "undefined"
)

// EqualsFunc succeeds iff the input is identical to expected.
// Comparison is Go's == on the dynamic values: no coercion and no deep
// equality, so an int never equals a float64 and non-comparable values never match.
func EqualsFunc(expected any, errorLike ...ErrorLike) Func {
	return syncFunc(equalsCheck(expected, firstErrorLike(errorLike)))
}

func equalsCheck(expected any, e ErrorLike) TransformFunc {
	e = orDefault(e, fmt.Sprintf("Expect value to equal \"%v\"", expected))
	return func(input any) (any, error) {
		if !identical(input, expected) {
			return nil, ToError(e, input)
		}
		return input, nil
	}
}

// syncFunc lifts a plain check into a Func that always answers immediately.
func syncFunc(fn TransformFunc) Func {
	return func(_ context.Context, input any) (Result, error) {
		v, err := fn(input)
		if err != nil {
			return Result{}, err
		}
		return Resolved(v), nil
	}
}

// TypeFunc succeeds iff the input belongs to the tag's category and is not null.
func TypeFunc(tag Tag, errorLike ...ErrorLike) Func {
	e := firstErrorLike(errorLike)
	return func(_ context.Context, input any) (Result, error) {
		if typeOf(input) != tag || isNull(input) {
			return Result{}, ToError(orDefault(e, fmt.Sprintf("Expect value to be \"%s\"", tag)), input)
		}
		return Resolved(input), nil
	}
}

// EnumValue succeeds iff the input is one of the descriptor's values.
//
// A map descriptor contributes the values of its string keys, skipping keys
// that look numeric (the reverse name lookup entries of a numeric enumeration).
// A slice or array descriptor contributes its elements. Any other descriptor
// panics with ErrInvalidEnum.
func EnumValue(descriptor any, errorLike ...ErrorLike) Func {
	values := enumValues(descriptor)
	e := orDefault(firstErrorLike(errorLike), "Unknown enum value")

	return func(_ context.Context, input any) (Result, error) {
		if !hasValue(values, input) {
			return Result{}, ToError(e, input)
		}
		return Resolved(input), nil
	}
}

func enumValues(descriptor any) map[any]struct{} {
	rv := reflect.ValueOf(descriptor)
	values := make(map[any]struct{})

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			panic(fmt.Errorf("%w: map keys must be strings, got %s", ErrInvalidEnum, rv.Type().Key()))
		}
		iter := rv.MapRange()
		for iter.Next() {
			if isNumericKey(iter.Key().String()) {
				continue
			}
			addEnumValue(values, iter.Value().Interface())
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			addEnumValue(values, rv.Index(i).Interface())
		}
	default:
		panic(fmt.Errorf("%w: %T", ErrInvalidEnum, descriptor))
	}

	return values
}

func addEnumValue(values map[any]struct{}, v any) {
	if !isComparable(v) {
		panic(fmt.Errorf("%w: value %v is not comparable", ErrInvalidEnum, v))
	}
	values[v] = struct{}{}
}

// isNumericKey mirrors how numeric enumerations name their reverse entries:
// any key that reads as a number, including the empty key.
func isNumericKey(key string) bool {
	k := strings.TrimSpace(key)
	switch {
	case k == "":
		return true
	case k == "Infinity" || k == "+Infinity" || k == "-Infinity":
		return true
	case strings.ContainsAny(k, "_nNiI"):
		// NaN, Inf and digit separators do not read as numbers
		return false
	}
	if len(k) > 2 && k[0] == '0' && strings.ContainsRune("xXoObB", rune(k[1])) {
		// prefixed integers take no sign, fraction or exponent
		_, err := strconv.ParseUint(k, 0, 64)
		return err == nil || errors.Is(err, strconv.ErrRange)
	}
	if strings.ContainsAny(k, "xXpP") {
		return false
	}
	// out of range decimals still read as a number: Infinity
	_, err := strconv.ParseFloat(k, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

func hasValue(values map[any]struct{}, v any) (found bool) {
	if !isComparable(v) {
		return false
	}
	// interface fields holding non-comparable values panic on hashing
	defer func() {
		if recover() != nil {
			found = false
		}
	}()
	_, found = values[v]
	return found
}

func typeOf(v any) Tag {
	if v == nil {
		return TagUndefined
	}

	switch v.(type) {
	case *big.Int:
		return TagBigInt
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return TagString
	case reflect.Bool:
		return TagBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return TagNumber
	case reflect.Func:
		return TagFunction
	default:
		return TagObject
	}
}

// isNull reports typed nil values: nil pointers, maps, slices, funcs, channels and interfaces.
func isNull(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func identical(a, b any) (same bool) {
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func firstErrorLike(errorLike []ErrorLike) ErrorLike {
	if len(errorLike) == 0 {
		return nil
	}
	return errorLike[0]
}

func orDefault(e ErrorLike, msg string) ErrorLike {
	if e != nil {
		return e
	}
	return Message(msg)
}
