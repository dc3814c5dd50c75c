package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"futurewire/internal/batch"
	metrics "futurewire/internal/metrics"
)

// outcomeRecord is one row of a batch outcome ledger.
type outcomeRecord struct {
	BatchID   string `parquet:"name=batch_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Kind      string `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8"`
	Index     int64  `parquet:"name=index, type=INT64"`
	Outcome   string `parquet:"name=outcome, type=BYTE_ARRAY, convertedtype=UTF8"`
	Error     string `parquet:"name=error, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp int64  `parquet:"name=timestamp, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

type memFile struct {
	buffer *bytes.Buffer
}

func newMemFile() *memFile {
	return &memFile{buffer: &bytes.Buffer{}}
}

func (m *memFile) Create(string) (source.ParquetFile, error) { return m, nil }
func (m *memFile) Open(string) (source.ParquetFile, error)   { return m, nil }
func (m *memFile) Seek(int64, int) (int64, error)            { return int64(m.buffer.Len()), nil }
func (m *memFile) Read([]byte) (int, error)                  { return 0, fmt.Errorf("read not supported") }
func (m *memFile) Write(b []byte) (int, error)               { return m.buffer.Write(b) }
func (m *memFile) Close() error                              { return nil }
func (m *memFile) Bytes() []byte                             { return m.buffer.Bytes() }

// outcomeRows lists one row per input element in index order. Suppressed
// failures carry their outcome but no error text.
func outcomeRows(res *batch.Result, at time.Time) []outcomeRecord {
	ts := at.UnixMilli()
	rows := make([]outcomeRecord, res.Total)
	for i := range rows {
		rows[i] = outcomeRecord{BatchID: res.BatchID, Kind: res.Kind, Index: int64(i), Outcome: metrics.OutcomeOK, Timestamp: ts}
	}
	for _, f := range res.Suppressed {
		rows[f.Index].Outcome = f.Outcome
	}
	for _, f := range res.Failures {
		rows[f.Index].Outcome = f.Outcome
		if f.Err != nil {
			rows[f.Index].Error = f.Err.Error()
		}
	}
	return rows
}

func encodeOutcomes(res *batch.Result, at time.Time) ([]byte, error) {
	mem := newMemFile()
	pw, err := writer.NewParquetWriter(mem, new(outcomeRecord), 1)
	if err != nil {
		return nil, fmt.Errorf("new parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range outcomeRows(res, at) {
		if err := pw.Write(row); err != nil {
			pw.WriteStop()
			return nil, fmt.Errorf("write outcome row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize outcome parquet: %w", err)
	}
	return mem.Bytes(), nil
}
