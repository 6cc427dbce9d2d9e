package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is a single named output value. Label is the human readable name
// used by Text; when empty the key is shown instead.
type Field struct {
	Key   string
	Label string
	Value any
}

// Data is an ordered output record.
type Data []Field

// Keys returns field names in order.
func (d Data) Keys() []string {
	keys := make([]string, len(d))
	for i, f := range d {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored under key.
func (d Data) Get(key string) (any, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Map exposes the record as a plain map for callers that do not care about order.
func (d Data) Map() map[string]any {
	m := make(map[string]any, len(d))
	for _, f := range d {
		m[f.Key] = f.Value
	}
	return m
}

// MarshalJSON writes the record as a JSON object preserving field order.
func (d Data) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Text renders one "Label: value" line per field, aligned on the longest label.
func (d Data) Text() string {
	width := 0
	for _, f := range d {
		if n := len(f.name()); n > width {
			width = n
		}
	}
	var b strings.Builder
	for _, f := range d {
		fmt.Fprintf(&b, "%-*s: %v\n", width, f.name(), f.Value)
	}
	return b.String()
}

func (f Field) name() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}
