// Package configvalue converts raw configuration values to typed values.
//
// Values come from TOML files, command-line strings and environment
// variables, so the same key may hold "5", int64(5) or 5.0 depending on
// where it was set. Conversion is weakly typed and never fails: an
// incompatible value yields the zero value.
package configvalue

import (
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// String converts v to a string.
func String(v any) string {
	var out string
	if !decode(v, &out) {
		return ""
	}
	return out
}

// Int converts v to an int.
func Int(v any) int {
	var out int
	if !decode(v, &out) {
		return 0
	}
	return out
}

// Float converts v to a float64.
func Float(v any) float64 {
	var out float64
	if !decode(v, &out) {
		return 0
	}
	return out
}

// Bool converts v to a bool.
func Bool(v any) bool {
	var out bool
	if !decode(v, &out) {
		return false
	}
	return out
}

// StringSlice converts v to a list of strings. A single string is split on
// commas and blank items are dropped.
func StringSlice(v any) []string {
	if s, ok := v.(string); ok {
		return splitList(s)
	}
	var out []string
	if !decode(v, &out) {
		return nil
	}
	return out
}

// Parse interprets a command-line string as the most specific scalar type.
// Used by "config set" and search parameters so that numbers and booleans
// are stored typed. Empty strings and numbers with leading zeros stay strings.
func Parse(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" || hasLeadingZero(raw) {
		return raw
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if strings.ContainsAny(raw, "0123456789") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

func decode(in, out any) bool {
	if in == nil {
		return false
	}
	return mapstructure.WeakDecode(in, out) == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
