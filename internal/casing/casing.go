// Package casing translates between the wire representation of the remote
// data service (snake_case column names) and the in-memory representation
// used by entity structs (camelCase field names).
//
// Both transforms walk arbitrarily nested maps and slices, rewriting only the
// map keys. Values and scalars pass through untouched. ToMemory and ToWire
// are mutual inverses for key sets that stay within a single convention and
// contain no digits at case boundaries and no consecutive capitals; names
// outside that set are not guaranteed to round-trip.
package casing

import "strings"

// ToMemory rewrites every key in v from snake_case to camelCase, recursively
// through nested maps and slices. Input values are not modified; rewritten
// containers are fresh copies.
func ToMemory(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[camelKey(k)] = ToMemory(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ToMemory(val)
		}
		return out
	default:
		return v
	}
}

// ToWire is the inverse of ToMemory: every key is rewritten from camelCase
// to snake_case, recursively through nested maps and slices.
func ToWire(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[snakeKey(k)] = ToWire(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ToWire(val)
		}
		return out
	default:
		return v
	}
}

// camelKey replaces each underscore followed by a lowercase letter with the
// capitalized letter. Underscores not followed by a lowercase letter are kept.
func camelKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for i := 0; i < len(k); i++ {
		if k[i] == '_' && i+1 < len(k) && k[i+1] >= 'a' && k[i+1] <= 'z' {
			b.WriteByte(k[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(k[i])
	}
	return b.String()
}

// snakeKey replaces each uppercase ASCII letter with an underscore followed
// by its lowercase form.
func snakeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k) + 2)
	for i := 0; i < len(k); i++ {
		if k[i] >= 'A' && k[i] <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(k[i] - 'A' + 'a')
			continue
		}
		b.WriteByte(k[i])
	}
	return b.String()
}
