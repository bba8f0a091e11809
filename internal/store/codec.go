package store

import (
	"encoding/json"
	"fmt"

	"github.com/hanifgold/sitecms/internal/casing"
	"github.com/hanifgold/sitecms/internal/remote"
)

// encodeRow converts an entity struct to a wire-cased row: the struct's
// camelCase JSON form is flattened to a map and every key is rewritten to
// snake_case.
func encodeRow(v any) remote.Row {
	data, err := json.Marshal(v)
	if err != nil {
		// Entities are plain structs; marshalling cannot fail for them.
		panic(fmt.Sprintf("store: encoding row: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("store: encoding row: %v", err))
	}
	return casing.ToWire(m).(map[string]any)
}

// encodeRowWithoutID is encodeRow minus the id column, for updates keyed by
// id where the key itself must not appear in the change set.
func encodeRowWithoutID(v any) remote.Row {
	row := encodeRow(v)
	delete(row, "id")
	return row
}

// decodeRow converts one wire-cased row into an entity struct. Wire columns
// without a matching field (such as numeric row keys on the config singleton)
// are ignored.
func decodeRow[T any](row remote.Row) (T, error) {
	var out T
	data, err := json.Marshal(casing.ToMemory(row))
	if err != nil {
		return out, fmt.Errorf("re-encoding row: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding row: %w", err)
	}
	return out, nil
}

// decodeRows converts a wire-cased result set into a slice of entities.
func decodeRows[T any](rows []remote.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := decodeRow[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
