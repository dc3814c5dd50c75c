// Package batch decodes JSON arrays of one record kind, keeping every element
// that decodes and reporting every element that does not.
package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"futurewire/codec"
	appconfig "futurewire/config"
	"futurewire/futures"
	metrics "futurewire/internal/metrics"
	"futurewire/logger"
)

// Record is one successfully decoded element and its position in the input.
type Record struct {
	Index int
	Value any
}

// Failure is one element that could not be decoded.
type Failure struct {
	Index   int
	Outcome string
	Err     error
}

// Result holds the outcome of decoding one batch.
type Result struct {
	BatchID  string
	Kind     string
	Total    int
	Records  []Record
	Failures []Failure
	// Suppressed holds the failures past the cap, without their errors.
	Suppressed []Failure
	// Failed counts all failures, kept and suppressed.
	Failed   int
	Duration time.Duration
}

// Values returns the decoded records without their indexes.
func (r *Result) Values() []any {
	out := make([]any, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Value
	}
	return out
}

// Err joins the kept failures as ElementErrors, or returns nil for a clean batch.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = &codec.ElementError{Index: f.Index, Err: f.Err}
	}
	return errors.Join(errs...)
}

// Decoder decodes batches and reports per-element metrics.
type Decoder struct {
	log         *logger.Log
	maxFailures int
}

// New creates a Decoder from the batch configuration.
func New(cfg appconfig.BatchConfig) *Decoder {
	return &Decoder{log: logger.GetLogger(), maxFailures: cfg.MaxFailures}
}

// Decode splits data into elements and decodes each as kind. Element failures
// never stop the batch; an error is returned only when kind is unknown or
// data is not a JSON array.
func (d *Decoder) Decode(kind string, data []byte) (*Result, error) {
	dec, err := futures.DecoderFor(kind)
	if err != nil {
		return nil, err
	}
	items, err := codec.SplitArray(data)
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", kind, err)
	}

	start := time.Now()
	res := &Result{
		BatchID: uuid.New().String(),
		Kind:    kind,
		Total:   len(items),
		Records: make([]Record, 0, len(items)),
	}
	log := d.log.WithComponent("batch").WithFields(logger.Fields{"batch_id": res.BatchID, "kind": kind})

	for i, raw := range items {
		v, err := dec(raw)
		metrics.EmitDecodeMetric(d.log, kind, err)
		logger.RecordDecode(kind, err == nil, len(raw))
		if err != nil {
			res.Failed++
			f := Failure{Index: i, Outcome: metrics.Outcome(err), Err: err}
			if d.maxFailures == 0 || len(res.Failures) < d.maxFailures {
				res.Failures = append(res.Failures, f)
			} else {
				f.Err = nil
				res.Suppressed = append(res.Suppressed, f)
			}
			log.WithError(err).WithFields(logger.Fields{"index": i}).Debug("element failed to decode")
			continue
		}
		res.Records = append(res.Records, Record{Index: i, Value: v})
	}
	res.Duration = time.Since(start)

	log.DataFlow("batch_input", "batch_result", len(res.Records), kind)
	log.Performance("decode", res.Duration, logger.Fields{
		"total":  res.Total,
		"failed": res.Failed,
	})
	if res.Failed > 0 {
		log.WithFields(logger.Fields{"failed": res.Failed, "total": res.Total}).Warn("batch decoded with failures")
	}
	return res, nil
}
