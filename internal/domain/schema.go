package domain

import (
	"fmt"
	"sort"
	"time"
)

// schema is an ordered group of fields describing one input contract.
type schema []Field

// parse runs every field in declaration order and stops at the first
// failure. Keys the schema does not declare are rejected once all declared
// fields have passed.
func (s schema) parse(input map[string]any, now time.Time) (map[string]any, error) {
	values := make(map[string]any, len(s))
	declared := make(map[string]struct{}, len(s))
	for _, f := range s {
		declared[f.Name] = struct{}{}
		raw, present := input[f.Name]
		v, err := f.Clean(raw, present, now)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}

	var unexpected []string
	for key := range input {
		if _, ok := declared[key]; !ok {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, &ValidationError{
			Field:   unexpected[0],
			Message: fmt.Sprintf("unexpected field '%s'", unexpected[0]),
		}
	}
	return values, nil
}

// present lists the declared fields whose stored value is not nil.
func (s schema) present(values map[string]any) []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		if values[f.Name] != nil {
			names = append(names, f.Name)
		}
	}
	return names
}

func stringValue(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func dateValue(v any) *time.Time {
	d, ok := v.(time.Time)
	if !ok {
		return nil
	}
	return &d
}

func intValue(v any) *int {
	n, ok := v.(int)
	if !ok {
		return nil
	}
	return &n
}
