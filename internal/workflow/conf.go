package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Conf is the JSON object a run is triggered with. Getters return the
// supplied default when a key is missing or of an unexpected type.
type Conf map[string]any

// ParseConf decodes a JSON object. Empty input and null yield an empty Conf.
func ParseConf(b []byte) (Conf, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return Conf{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var c Conf
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("workflow: parse conf: %w", err)
	}
	if c == nil {
		c = Conf{}
	}
	return c, nil
}

// String returns the string value for key or def.
func (c Conf) String(key, def string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Int returns the integer value for key or def. Numeric strings are accepted.
func (c Conf) Int(key string, def int) int {
	if n, ok := c.OptionalInt(key); ok {
		return n
	}
	return def
}

// OptionalInt returns the integer value for key and whether one was present.
// A null value counts as absent.
func (c Conf) OptionalInt(key string) (int, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}
