package utils

import (
	"errors"
	"math"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"htc-backend/internal/shared/apperr"
)

// FieldRules pairs a value with the rules it must satisfy.
type FieldRules struct {
	value interface{}
	rules []validation.Rule
}

func Field(value interface{}, rules ...validation.Rule) FieldRules {
	return FieldRules{value: value, rules: rules}
}

// FirstInvalid checks fields in order and returns the first failure as a validation error.
func FirstInvalid(fields ...FieldRules) error {
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			return apperr.Validation(err.Error())
		}
	}
	return nil
}

// AbsoluteURL accepts nil, empty values and well-formed http(s) URLs.
func AbsoluteURL(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := validation.Indirect(value)
		s, _ := v.(string)
		if s == "" {
			return nil
		}
		if err := is.RequestURL.Validate(s); err != nil {
			return errors.New(message)
		}
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return errors.New(message)
		}
		if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
			return errors.New(message)
		}
		return nil
	})
}

// Between checks a float64 inclusively. Unlike validation.Min/Max it does not skip zero;
// only a nil pointer is skipped. NaN and infinities are out of every range.
func Between(min, max float64, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		raw, isNil := validation.Indirect(value)
		if isNil || raw == nil {
			return nil
		}
		v, ok := raw.(float64)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max {
			return errors.New(message)
		}
		return nil
	})
}
