package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap maps onto a jsonb column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, m)
}

// StringList maps a []string onto a jsonb column (image URLs and the like).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source %T", src)
	}
}
