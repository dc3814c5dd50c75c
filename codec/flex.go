package codec

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Uint64 decodes from either 5 or "5". Leverage is the main user.
type Uint64 uint64

// Bool decodes from either true or "true".
type Bool bool

// ParseUint64 accepts a non-negative integer as a JSON number or a quoted string.
// Signs, fractions and exponents are rejected.
func ParseUint64(data []byte) (uint64, error) {
	s, ok := unquoteScalar(data)
	if !ok {
		return 0, &ValueError{Kind: "integer", Input: string(data)}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &ValueError{Kind: "integer", Input: string(data)}
	}
	return v, nil
}

// ParseBool accepts true/false as native booleans or quoted strings.
func ParseBool(data []byte) (bool, error) {
	s, ok := unquoteScalar(data)
	if !ok {
		return false, &ValueError{Kind: "boolean", Input: string(data)}
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &ValueError{Kind: "boolean", Input: string(data)}
}

func unquoteScalar(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", false
	}
	if data[0] != '"' {
		return string(data), true
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	v, err := ParseUint64(data)
	if err != nil {
		return err
	}
	*u = Uint64(v)
	return nil
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	v, err := ParseBool(data)
	if err != nil {
		return err
	}
	*b = Bool(v)
	return nil
}
