package codec

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

type side string

const (
	sideBuy  side = "BUY"
	sideSell side = "SELL"
)

var sides = []side{sideBuy, sideSell}

func (s *side) UnmarshalJSON(data []byte) error {
	v, err := DecodeEnum("side", data, sides)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type fill struct {
	ID       uint64  `json:"id"`
	Price    Number  `json:"price"`
	Side     side    `json:"side"`
	Stop     Number  `json:"stopPrice,omitempty"`
	Activate *Number `json:"activatePrice"`
}

func (f *fill) UnmarshalJSON(data []byte) error {
	type alias fill
	return DecodeRecord("fill", data, (*alias)(f))
}

func TestRequiredKeys(t *testing.T) {
	got := RequiredKeys(reflect.TypeOf(fill{}))
	want := []string{"id", "price", "side"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RequiredKeys = %v, want %v", got, want)
	}
}

func TestDecodeRecordDefaults(t *testing.T) {
	var f fill
	if err := json.Unmarshal([]byte(`{"id":1,"price":"10.5","side":"BUY"}`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !f.Stop.IsZero() {
		t.Errorf("expected zero stop price, got %s", f.Stop)
	}
	if f.Activate != nil {
		t.Errorf("expected nil activate price, got %s", f.Activate)
	}
	if f.Side != sideBuy || !f.Price.Equal(MustNumber("10.5")) {
		t.Errorf("unexpected fill %+v", f)
	}
}

func TestDecodeRecordMissingField(t *testing.T) {
	var f fill
	err := json.Unmarshal([]byte(`{"id":1,"side":"BUY"}`), &f)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "price" {
		t.Fatalf("expected missing price, got %v", err)
	}
	var rec *RecordError
	if !errors.As(err, &rec) || rec.Record != "fill" {
		t.Fatalf("expected RecordError for fill, got %v", err)
	}
}

func TestDecodeRecordUnknownEnum(t *testing.T) {
	var f fill
	err := json.Unmarshal([]byte(`{"id":1,"price":"1","side":"HOLD"}`), &f)
	var enumErr *EnumError
	if !errors.As(err, &enumErr) {
		t.Fatalf("expected EnumError, got %v", err)
	}
	if enumErr.Enum != "side" || enumErr.Tag != "HOLD" {
		t.Fatalf("unexpected enum error %+v", enumErr)
	}
	if !errors.Is(err, ErrUnknownEnumVariant) {
		t.Fatalf("expected ErrUnknownEnumVariant in chain")
	}
}

func TestDecodeRecordWrongShape(t *testing.T) {
	var f fill
	err := json.Unmarshal([]byte(`[1,2]`), &f)
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnmarshalTypeError, got %v", err)
	}
}

func TestDecodeEnumRejectsNull(t *testing.T) {
	if _, err := DecodeEnum("side", []byte(`null`), sides); !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("expected ErrMalformedValue for null, got %v", err)
	}
}

func TestDecodeListReportsFailingIndex(t *testing.T) {
	data := []byte(`[
		{"id":1,"price":"1","side":"BUY"},
		{"id":2,"price":"oops","side":"SELL"},
		{"id":3,"price":"3","side":"SELL"}
	]`)
	_, err := DecodeList[fill](data)
	var elemErr *ElementError
	if !errors.As(err, &elemErr) {
		t.Fatalf("expected ElementError, got %v", err)
	}
	if elemErr.Index != 1 {
		t.Fatalf("expected failure at index 1, got %d", elemErr.Index)
	}
	if !errors.Is(err, ErrMalformedNumber) {
		t.Fatalf("expected ErrMalformedNumber in chain, got %v", err)
	}
}

func TestDecodeListRejectsObject(t *testing.T) {
	if _, err := DecodeList[fill]([]byte(`{"id":1}`)); err == nil {
		t.Fatalf("expected error for non-array input")
	}
}
