package codec

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var requiredKeysCache sync.Map // reflect.Type -> []string

// RequiredKeys lists the JSON keys of struct type t that must be present.
// A field is optional when it is a pointer or carries omitempty.
func RequiredKeys(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := requiredKeysCache.Load(t); ok {
		return cached.([]string)
	}

	var keys []string
	if t.Kind() == reflect.Struct {
		keys = collectRequired(t, keys)
	}
	actual, _ := requiredKeysCache.LoadOrStore(t, keys)
	return actual.([]string)
}

func collectRequired(t reflect.Type, keys []string) []string {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			keys = collectRequired(f.Type, keys)
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		if f.Type.Kind() == reflect.Pointer || hasOption(opts, "omitempty") {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// DecodeRecord checks that every required key of v is present in the JSON
// object and then decodes it into v. Callers pass an alias of their type so
// the record's own UnmarshalJSON is not re-entered. Every failure is wrapped in
// a RecordError naming record.
func DecodeRecord(record string, data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return &RecordError{Record: record, Err: &json.UnmarshalTypeError{
			Value: describeJSON(data),
			Type:  reflect.TypeOf(v).Elem(),
		}}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &RecordError{Record: record, Err: err}
	}
	for _, key := range RequiredKeys(reflect.TypeOf(v)) {
		if _, ok := fields[key]; !ok {
			return &RecordError{Record: record, Err: &MissingFieldError{Field: key}}
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &RecordError{Record: record, Err: err}
	}
	return nil
}

// SplitArray returns the raw elements of a JSON array.
func SplitArray(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &json.UnmarshalTypeError{Value: describeJSON(data), Type: reflect.TypeOf([]json.RawMessage{})}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DecodeList decodes a JSON array element by element and stops at the first
// failure, reporting its index in an ElementError.
func DecodeList[T any](data []byte) ([]T, error) {
	items, err := SplitArray(data)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	for i, raw := range items {
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
	}
	return out, nil
}

func describeJSON(data []byte) string {
	if len(data) == 0 {
		return "empty"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	}
	return "number"
}
