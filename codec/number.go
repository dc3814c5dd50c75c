// Package codec converts the exchange's loosely typed JSON scalars into exact
// Go values. Prices and quantities arrive either as quoted decimal strings or
// as bare JSON numbers; both decode to the same Number without going through
// float64.
package codec

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/shopspring/decimal"
)

// Number is an exact base-10 value used for every price, quantity, rate and balance.
type Number struct {
	decimal.Decimal
}

// Zero is the zero Number.
var Zero = Number{}

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// NumberFromString parses a decimal literal such as "0.001" or "-12.5".
func NumberFromString(s string) (Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, &NumberError{Input: s, Err: err}
	}
	return Number{Decimal: d}, nil
}

// MustNumber is NumberFromString that panics on malformed input. Intended for constants and tests.
func MustNumber(s string) Number {
	n, err := NumberFromString(s)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseNumber decodes one JSON value that is either a string holding a decimal
// literal or a native JSON number.
func ParseNumber(data []byte) (Number, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Number{}, &NumberError{Input: ""}
	}

	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Number{}, &NumberError{Input: string(data), Err: err}
		}
		return NumberFromString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		if !json.Valid(data) {
			return Number{}, &NumberError{Input: string(data)}
		}
		return NumberFromString(string(data))
	default:
		return Number{}, &NumberError{Input: string(data)}
	}
}

// ParseOptionalNumber is ParseNumber for fields that may be absent or null.
// Both yield nil.
func ParseOptionalNumber(data []byte) (*Number, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	n, err := ParseNumber(data)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Equal reports whether n and o hold the same value regardless of scale.
func (n Number) Equal(o Number) bool {
	return n.Decimal.Equal(o.Decimal)
}

// String renders the canonical decimal form, never in scientific notation.
func (n Number) String() string {
	return n.Decimal.String()
}

func (n *Number) UnmarshalJSON(data []byte) error {
	v, err := ParseNumber(data)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MarshalJSON encodes the value as a quoted decimal string, the form the exchange accepts.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// EncodeValues lets go-querystring render a Number as its canonical string.
func (n Number) EncodeValues(key string, v *url.Values) error {
	v.Set(key, n.String())
	return nil
}

// FormatOptional renders n or returns the empty string for nil.
func FormatOptional(n *Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}
