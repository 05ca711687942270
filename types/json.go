package types

import (
	"bytes"

	json "github.com/goccy/go-json"
)

const (
	expectingTimestamp = "a date string"
	expectingDuration  = "a duration string"
)

// MarshalJSON encodes the Timestamp as an RFC 3339 JSON string, the
// protobuf JSON mapping of google.protobuf.Timestamp.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	s, err := ts.Format()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts a single JSON string holding an RFC 3339 date.
// Any other token kind yields a *ShapeError; null leaves ts unchanged.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s, ok, err := stringToken(data, expectingTimestamp)
	if err != nil || !ok {
		return err
	}
	v, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

func (ts Timestamp) MarshalText() ([]byte, error) {
	s, err := ts.Format()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (ts *Timestamp) UnmarshalText(text []byte) error {
	v, err := ParseTimestamp(string(text))
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

// MarshalJSON encodes the Duration in protobuf JSON form, e.g. "1.5s".
func (d Duration) MarshalJSON() ([]byte, error) {
	s, err := d.Format()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	s, ok, err := stringToken(data, expectingDuration)
	if err != nil || !ok {
		return err
	}
	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	s, err := d.Format()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// stringToken decodes data as a JSON string. ok is false for null.
func stringToken(data []byte, expecting string) (s string, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		kind := tokenKind(data)
		if kind == "null" {
			return "", false, nil
		}
		return "", false, &ShapeError{Expected: expecting, Got: kind}
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false, err
	}
	return s, true, nil
}

func tokenKind(data []byte) string {
	if len(data) == 0 {
		return "empty input"
	}
	switch c := data[0]; {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == 't' || c == 'f':
		return "boolean"
	case bytes.Equal(data, []byte("null")):
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number `" + string(data) + "`"
	default:
		return "invalid token"
	}
}
