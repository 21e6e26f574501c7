package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind selects the value check a Field applies after the required and
// nullable gates have passed.
type Kind int

// Supported field kinds.
const (
	KindChar Kind = iota
	KindArguments
	KindEmail
	KindPhone
	KindDate
	KindBirthDay
	KindGender
	KindClientIDs
)

// DateLayout is the DD.MM.YYYY layout accepted by date fields.
const DateLayout = "02.01.2006"

// MaxAgeYears bounds how far in the past a birthday may lie.
const MaxAgeYears = 70

// Gender values accepted by gender fields.
const (
	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

// Field is a reusable validation rule bound to one named attribute of a
// request schema. Fields are declared once and never mutated.
type Field struct {
	Name     string
	Required bool
	Nullable bool
	Kind     Kind
}

// Clean validates a raw value and returns the value to store.
//
// present reports whether the key was supplied at all; an absent key and an
// explicit null are different inputs, but both are stored as nil. The
// returned value is one of string, map[string]any, time.Time, int, []int
// or nil.
func (f Field) Clean(raw any, present bool, now time.Time) (any, error) {
	if !present {
		if f.Required {
			return nil, fieldError(f.Name, "is required")
		}
		return nil, nil
	}
	if raw == nil {
		if !f.Nullable {
			return nil, fieldError(f.Name, "can not be nullable")
		}
		return nil, nil
	}

	switch f.Kind {
	case KindChar:
		s, ok := raw.(string)
		if !ok {
			return nil, fieldError(f.Name, "must be string")
		}
		return s, nil

	case KindArguments:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fieldError(f.Name, "must be dict")
		}
		return m, nil

	case KindEmail:
		s, ok := raw.(string)
		if !ok || !strings.Contains(s, "@") {
			return nil, fieldError(f.Name, "must be string with '@'")
		}
		return s, nil

	case KindPhone:
		phone, ok := phoneDigits(raw)
		if !ok {
			return nil, fieldError(f.Name,
				"must be string or integer, starts with '7' and have a length of 11")
		}
		return phone, nil

	case KindDate, KindBirthDay:
		s, ok := raw.(string)
		if !ok {
			return nil, fieldError(f.Name, "must be date with DD.MM.YYYY format")
		}
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, fieldError(f.Name, "must be date with DD.MM.YYYY format")
		}
		if f.Kind == KindBirthDay && d.Before(oldestBirthday(now)) {
			return nil, fieldError(f.Name, "must be a date that has passed no more than 70 years")
		}
		return d, nil

	case KindGender:
		n, ok := asInt(raw)
		if !ok || n < GenderUnknown || n > GenderFemale {
			return nil, fieldError(f.Name, "must be integer with value 0, 1 or 2")
		}
		return int(n), nil

	case KindClientIDs:
		ids, ok := clientIDs(raw)
		if !ok {
			return nil, fieldError(f.Name, "must be list with integers")
		}
		return ids, nil
	}

	return nil, fieldError(f.Name, "has unknown kind")
}

// oldestBirthday returns the earliest calendar date accepted as a birthday.
func oldestBirthday(now time.Time) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(-MaxAgeYears, 0, 0)
}

// phoneDigits accepts a string or integer of exactly 11 decimal digits
// starting with 7 and returns its string form.
func phoneDigits(raw any) (string, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	default:
		n, ok := asInt(raw)
		if !ok {
			return "", false
		}
		s = strconv.FormatInt(n, 10)
	}
	if len(s) != 11 || s[0] != '7' {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}

// clientIDs accepts a non-empty list whose every element is an integer.
func clientIDs(raw any) ([]int, bool) {
	switch v := raw.(type) {
	case []int:
		if len(v) == 0 {
			return nil, false
		}
		return append([]int(nil), v...), true
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		ids := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := asInt(item)
			if !ok {
				return nil, false
			}
			ids = append(ids, int(n))
		}
		return ids, true
	}
	return nil, false
}

// asInt reports whether v is an integer. JSON numbers carrying a fraction or
// an exponent are not integers, and neither are booleans.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if strings.ContainsAny(n.String(), ".eE") {
			return 0, false
		}
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}
