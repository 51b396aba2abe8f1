package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedMap is a JSON object that remembers the order its keys appeared in.
// Multilib suffixes are assigned in that order.
type OrderedMap[T any] struct {
	keys   []string
	values map[string]T
}

// Set stores value under key, keeping the position of an existing key.
func (m *OrderedMap[T]) Set(key string, value T) {
	if m.values == nil {
		m.values = make(map[string]T)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[T]) Get(key string) (T, bool) {
	if m == nil {
		var zero T
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in document order.
func (m *OrderedMap[T]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys.
func (m *OrderedMap[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *OrderedMap[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[string]T)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value T
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		m.Set(key, value)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
