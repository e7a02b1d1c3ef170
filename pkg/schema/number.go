package schema

import (
	"fmt"
	"math"
	"reflect"
)

// NumberValidator validates numeric values of any Go numeric kind.
// Values are returned unchanged; bounds are compared as float64.
type NumberValidator struct {
	Validator
}

// Number returns a validator accepting any integer or floating point value.
func Number(errorLike ...ErrorLike) NumberValidator {
	return NumberValidator{NewValidator(TypeFunc(TagNumber, errorLike...))}
}

func newNumber(v Validator) NumberValidator {
	return NumberValidator{v}
}

func (n NumberValidator) check(ok func(float64) bool, e ErrorLike) NumberValidator {
	return Transform(n.Validator, func(value any) (any, error) {
		if !ok(floatOf(value)) {
			return nil, ToError(e, value)
		}
		return value, nil
	}, newNumber)
}

// Min requires value >= bound.
func (n NumberValidator) Min(bound float64, errorLike ...ErrorLike) NumberValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect value to be greater than or equal to %v", bound))
	return n.check(func(v float64) bool { return v >= bound }, e)
}

// Max requires value <= bound.
func (n NumberValidator) Max(bound float64, errorLike ...ErrorLike) NumberValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect value to be less than or equal to %v", bound))
	return n.check(func(v float64) bool { return v <= bound }, e)
}

// Gt requires value > bound.
func (n NumberValidator) Gt(bound float64, errorLike ...ErrorLike) NumberValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect value to be greater than %v", bound))
	return n.check(func(v float64) bool { return v > bound }, e)
}

// Lt requires value < bound.
func (n NumberValidator) Lt(bound float64, errorLike ...ErrorLike) NumberValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect value to be less than %v", bound))
	return n.check(func(v float64) bool { return v < bound }, e)
}

// Integer requires a value without a fractional part.
func (n NumberValidator) Integer(errorLike ...ErrorLike) NumberValidator {
	e := orDefault(firstErrorLike(errorLike), "Expect value to be an integer")
	return n.check(func(v float64) bool { return !math.IsInf(v, 0) && v == math.Trunc(v) }, e)
}

// Positive requires value > 0.
func (n NumberValidator) Positive(errorLike ...ErrorLike) NumberValidator {
	e := orDefault(firstErrorLike(errorLike), "Expect value to be positive")
	return n.check(func(v float64) bool { return v > 0 }, e)
}

// Equals returns a NumberValidator requiring the value to be identical to expected.
func (n NumberValidator) Equals(expected any, errorLike ...ErrorLike) NumberValidator {
	return Transform(n.Validator, equalsCheck(expected, firstErrorLike(errorLike)), newNumber)
}

func floatOf(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}
