package metrics

import (
	"encoding/json"
	"errors"

	"futurewire/codec"
	"futurewire/futures"
	"futurewire/logger"
)

const (
	decodeComponent  = "decode"
	streamComponent  = "stream"
	archiveComponent = "archive"
)

// Metric names emitted by the decode path.
const (
	MetricRecordsDecoded = "records_decoded"
	MetricRecordsFailed  = "records_failed"
	MetricFramesRead     = "stream_frames_read"
	MetricObjectsWritten = "archive_objects_written"
)

// Decode outcomes. Every failure maps to exactly one of these.
const (
	OutcomeOK              = "ok"
	OutcomeMissingField    = "missing_field"
	OutcomeUnknownVariant  = "unknown_variant"
	OutcomeUnknownEvent    = "unknown_event"
	OutcomeMalformedNumber = "malformed_number"
	OutcomeMalformedValue  = "malformed_value"
	OutcomeInvalidPeriod   = "invalid_period"
	OutcomeWrongShape      = "wrong_shape"
	OutcomeInvalidJSON     = "invalid_json"
	OutcomeOther           = "other"
)

// Outcome classifies a decode error.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, codec.ErrMissingField):
		return OutcomeMissingField
	case errors.Is(err, codec.ErrUnknownEnumVariant):
		return OutcomeUnknownVariant
	case errors.Is(err, futures.ErrUnknownEventType):
		return OutcomeUnknownEvent
	case errors.Is(err, codec.ErrMalformedNumber):
		return OutcomeMalformedNumber
	case errors.Is(err, codec.ErrMalformedValue):
		return OutcomeMalformedValue
	case errors.Is(err, futures.ErrInvalidPeriod):
		return OutcomeInvalidPeriod
	case errors.As(err, &typeErr):
		return OutcomeWrongShape
	case errors.As(err, &syntaxErr):
		return OutcomeInvalidJSON
	default:
		return OutcomeOther
	}
}

// EmitDecodeMetric records one decode attempt for kind. A nil err counts as decoded.
func EmitDecodeMetric(log *logger.Log, kind string, err error) {
	outcome := Outcome(err)
	name := MetricRecordsDecoded
	if err != nil {
		name = MetricRecordsFailed
	}
	EmitMetric(log, decodeComponent, name, 1, "counter", logger.Fields{
		"kind":    kind,
		"outcome": outcome,
		"unit":    "count",
	})
}

// EmitFrameMetric records one websocket frame read by a stream consumer.
func EmitFrameMetric(log *logger.Log, stream string, size int) {
	EmitMetric(log, streamComponent, MetricFramesRead, size, "counter", logger.Fields{
		"stream": stream,
		"unit":   "bytes",
	})
}

// EmitArchiveMetric records one object written to the archive.
func EmitArchiveMetric(log *logger.Log, kind string, size int64) {
	EmitMetric(log, archiveComponent, MetricObjectsWritten, size, "counter", logger.Fields{
		"kind": kind,
		"unit": "bytes",
	})
}
