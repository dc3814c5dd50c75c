package codec

import (
	"bytes"
	"encoding/json"
)

// ParseEnum returns tag as T when it is one of known.
func ParseEnum[T ~string](enum, tag string, known []T) (T, error) {
	for _, k := range known {
		if string(k) == tag {
			return k, nil
		}
	}
	return "", &EnumError{Enum: enum, Tag: tag}
}

// DecodeEnum decodes a JSON string into one of known. Any non-string value, null included, is malformed.
func DecodeEnum[T ~string](enum string, data []byte, known []T) (T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", &ValueError{Kind: enum, Input: string(data)}
	}
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return "", &ValueError{Kind: enum, Input: string(data)}
	}
	return ParseEnum(enum, tag, known)
}
