package keeloq

import (
	"fmt"
	"strconv"

	"github.com/d21d3q/gokeeloq/internal/records"
)

// FieldSet offers typed helpers on top of the decoded record.
type FieldSet struct {
	data records.Data
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the fields as a plain map.
func (fs FieldSet) Map() map[string]any {
	return fs.data.Map()
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	return fs.data.Get(key)
}

// Int returns the field as int64. Hex string fields such as id and
// encrypted are parsed as hexadecimal.
func (fs FieldSet) Int(key string) (int64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not hex: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// String returns the field as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Bool returns a 0/1 flag field as bool.
func (fs FieldSet) Bool(key string) (bool, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return false, fmt.Errorf("field %q missing", key)
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		if b != 0 && b != 1 {
			return false, fmt.Errorf("field %q is not a flag: %d", key, b)
		}
		return b == 1, nil
	default:
		return false, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}
