package futures

import (
	"sort"
	"testing"
)

func TestKindsSortedAndResolvable(t *testing.T) {
	kinds := Kinds()
	if !sort.StringsAreSorted(kinds) {
		t.Fatalf("kinds not sorted: %v", kinds)
	}
	for _, k := range kinds {
		if _, err := DecoderFor(k); err != nil {
			t.Errorf("DecoderFor(%q): %v", k, err)
		}
	}
	if _, err := DecoderFor("kline"); err == nil {
		t.Fatalf("expected error for unregistered kind")
	}
}

func TestDecoderForReturnsTypedRecords(t *testing.T) {
	dec, err := DecoderFor("open_interest")
	if err != nil {
		t.Fatalf("DecoderFor: %v", err)
	}
	v, err := dec([]byte(`{"openInterest":"1.5","symbol":"ETHUSDT"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	oi, ok := v.(*OpenInterest)
	if !ok || oi.Symbol != "ETHUSDT" {
		t.Fatalf("unexpected record %#v", v)
	}

	dec, _ = DecoderFor("ws_event")
	v, err = dec([]byte(accountUpdateFrame))
	if err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if _, ok := v.(*AccountUpdate); !ok {
		t.Fatalf("expected *AccountUpdate, got %T", v)
	}

	dec, _ = DecoderFor("filter")
	v, err = dec([]byte(`{"filterType":"MIN_NOTIONAL","notional":"5"}`))
	if err != nil {
		t.Fatalf("decode filter: %v", err)
	}
	if _, ok := v.(*MinNotionalFilter); !ok {
		t.Fatalf("expected *MinNotionalFilter, got %T", v)
	}
}
