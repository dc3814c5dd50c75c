package metrics

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"futurewire/codec"
	"futurewire/futures"
)

func TestOutcome(t *testing.T) {
	_, numberErr := codec.ParseNumber([]byte(`"1.2.3"`))
	_, eventErr := futures.DecodeEvent([]byte(`{"e":"MARGIN_CALL","E":1}`))
	var syntaxTarget any
	syntaxErr := json.Unmarshal([]byte(`{`), &syntaxTarget)
	var typeTarget struct{ A int }
	typeErr := json.Unmarshal([]byte(`{"A":"x"}`), &typeTarget)

	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&codec.RecordError{Record: "Order", Err: &codec.MissingFieldError{Field: "orderId"}}, OutcomeMissingField},
		{&codec.ElementError{Index: 2, Err: &codec.EnumError{Enum: "OrderSide", Tag: "HOLD"}}, OutcomeUnknownVariant},
		{eventErr, OutcomeUnknownEvent},
		{numberErr, OutcomeMalformedNumber},
		{&codec.ValueError{Kind: "bool", Input: "1"}, OutcomeMalformedValue},
		{&futures.PeriodError{Period: "3h"}, OutcomeInvalidPeriod},
		{typeErr, OutcomeWrongShape},
		{syntaxErr, OutcomeInvalidJSON},
		{errors.New("boom"), OutcomeOther},
	}
	for i, c := range cases {
		if got := Outcome(c.err); got != c.want {
			t.Errorf("case %d: Outcome(%v) = %s, want %s", i, c.err, got, c.want)
		}
	}
}

func TestEmitDecodeMetricFields(t *testing.T) {
	resetMetricHandlers()

	events := make(chan Metric, 2)
	id := RegisterMetricHandler(func(m Metric) { events <- m })
	t.Cleanup(func() { UnregisterMetricHandler(id) })

	EmitDecodeMetric(nil, "order", nil)
	EmitDecodeMetric(nil, "order", &codec.MissingFieldError{Field: "side"})

	for _, want := range []struct{ name, outcome string }{
		{MetricRecordsDecoded, OutcomeOK},
		{MetricRecordsFailed, OutcomeMissingField},
	} {
		select {
		case m := <-events:
			if m.Name != want.name || m.Fields["outcome"] != want.outcome || m.Fields["kind"] != "order" {
				t.Fatalf("unexpected metric %+v", m)
			}
		case <-time.After(50 * time.Millisecond):
			t.Fatal("metric handler not invoked")
		}
	}
}
