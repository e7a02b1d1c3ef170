package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StringValidator validates string values and adds string-specific chain methods.
type StringValidator struct {
	Validator
}

// String returns a validator accepting any value of string kind.
func String(errorLike ...ErrorLike) StringValidator {
	return StringValidator{NewValidator(TypeFunc(TagString, errorLike...))}
}

func newString(v Validator) StringValidator {
	return StringValidator{v}
}

func (s StringValidator) check(ok func(string) bool, e ErrorLike) StringValidator {
	return Transform(s.Validator, func(value any) (any, error) {
		if !ok(stringOf(value)) {
			return nil, ToError(e, value)
		}
		return value, nil
	}, newString)
}

func (s StringValidator) convert(fn func(string) string) StringValidator {
	return Transform(s.Validator, func(value any) (any, error) {
		return fn(stringOf(value)), nil
	}, newString)
}

// Min requires at least n characters.
func (s StringValidator) Min(n int, errorLike ...ErrorLike) StringValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect length to be minimum of %d characters", n))
	return s.check(func(v string) bool { return utf8.RuneCountInString(v) >= n }, e)
}

// Max allows at most n characters.
func (s StringValidator) Max(n int, errorLike ...ErrorLike) StringValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect length to be maximum of %d characters", n))
	return s.check(func(v string) bool { return utf8.RuneCountInString(v) <= n }, e)
}

// Between requires a length in [minLen, maxLen].
func (s StringValidator) Between(minLen, maxLen int, errorLike ...ErrorLike) StringValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect length to be between %d and %d characters", minLen, maxLen))
	return s.check(func(v string) bool {
		n := utf8.RuneCountInString(v)
		return n >= minLen && n <= maxLen
	}, e)
}

// Regexp requires the value to match re.
func (s StringValidator) Regexp(re *regexp.Regexp, errorLike ...ErrorLike) StringValidator {
	e := orDefault(firstErrorLike(errorLike), fmt.Sprintf("Expect value to match \"%s\"", re))
	return s.check(re.MatchString, e)
}

// UUID requires a valid UUID and returns it in canonical form.
func (s StringValidator) UUID(errorLike ...ErrorLike) StringValidator {
	e := orDefault(firstErrorLike(errorLike), "Expect value to be a valid UUID")
	return Transform(s.Validator, func(value any) (any, error) {
		id, err := uuid.Parse(stringOf(value))
		if err != nil {
			return nil, ToError(e, value)
		}
		return id.String(), nil
	}, newString)
}

// Trim removes leading and trailing white space.
func (s StringValidator) Trim() StringValidator {
	return s.convert(strings.TrimSpace)
}

// ToLowerCase lower-cases the value using language-neutral case mapping.
func (s StringValidator) ToLowerCase() StringValidator {
	return s.convert(func(v string) string {
		// Casers are stateful; one per call
		return cases.Lower(language.Und).String(v)
	})
}

// ToUpperCase upper-cases the value using language-neutral case mapping.
func (s StringValidator) ToUpperCase() StringValidator {
	return s.convert(func(v string) string {
		return cases.Upper(language.Und).String(v)
	})
}

// Equals returns a StringValidator requiring the value to equal expected.
func (s StringValidator) Equals(expected string, errorLike ...ErrorLike) StringValidator {
	return Transform(s.Validator, equalsCheck(expected, firstErrorLike(errorLike)), newString)
}

func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return reflect.ValueOf(v).String()
}
