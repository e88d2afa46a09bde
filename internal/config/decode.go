package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// decode fills c from a merged settings map. Every problem is reported,
// joined into a single error.
func (c *Config) decode(data map[string]any) error {
	var errs []error
	for _, section := range slices.Sorted(maps.Keys(data)) {
		value := data[section]
		switch section {
		case "editor":
			errs = append(errs, decodeSection(section, value, map[string]func(string, any) error{
				"wrap_width": func(path string, v any) error {
					n, err := toInt(path, v)
					if err == nil {
						c.Editor.WrapWidth = n
					}
					return err
				},
			})...)
		case "log":
			errs = append(errs, decodeSection(section, value, map[string]func(string, any) error{
				"level": func(path string, v any) error {
					s, err := toString(path, v)
					if err == nil {
						c.Log.Level = strings.ToLower(s)
					}
					return err
				},
				"file": func(path string, v any) error {
					s, err := toString(path, v)
					if err == nil {
						c.Log.File = s
					}
					return err
				},
			})...)
		case "keymap":
			errs = append(errs, c.decodeKeymap(value)...)
		default:
			errs = append(errs, unknown(section))
		}
	}
	return errors.Join(errs...)
}

func decodeSection(section string, value any, fields map[string]func(string, any) error) []error {
	m, ok := value.(map[string]any)
	if !ok {
		return []error{invalid(section, "must be a table", value)}
	}
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(m)) {
		path := section + "." + key
		set, ok := fields[key]
		if !ok {
			errs = append(errs, unknown(path))
			continue
		}
		if err := set(path, m[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *Config) decodeKeymap(value any) []error {
	m, ok := value.(map[string]any)
	if !ok {
		return []error{invalid("keymap", "must be a table", value)}
	}
	var errs []error
	for _, spec := range slices.Sorted(maps.Keys(m)) {
		action, err := toString(fmt.Sprintf("keymap.%q", spec), m[spec])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.Keymap[spec] = action
	}
	return errs
}

func toInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, invalid(path, "out of range", v)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, invalid(path, "must be an integer", v)
		}
		return int(n), nil
	default:
		return 0, invalid(path, "must be an integer", v)
	}
}

func toString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(path, "must be a string", v)
	}
	return s, nil
}
