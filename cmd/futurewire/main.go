package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"futurewire/config"
	"futurewire/futures"
	"futurewire/internal/archive"
	"futurewire/internal/batch"
	metrics "futurewire/internal/metrics"
	"futurewire/internal/sdkcompat"
	"futurewire/internal/stream"
	"futurewire/logger"
)

type options struct {
	configPath string
	shardPath  string
	kind       string
	in         string
	batch      bool
	sdk        bool
	stream     bool
	period     string
	kinds      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("futurewire", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.shardPath, "shards", "", "Path to stream shard configuration file")
	fs.StringVar(&opts.kind, "kind", "", "Record kind to decode (see -kinds)")
	fs.StringVar(&opts.in, "in", "-", "Input file, - for stdin")
	fs.BoolVar(&opts.batch, "batch", false, "Decode a JSON array element by element")
	fs.BoolVar(&opts.sdk, "sdk", false, "Input was serialized from go-binance client values")
	fs.BoolVar(&opts.stream, "stream", false, "Follow the configured user-data stream")
	fs.StringVar(&opts.period, "period", "", "Validate a statistics period token")
	fs.BoolVar(&opts.kinds, "kinds", false, "List record kinds")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

type failureView struct {
	Index   int    `json:"index"`
	Outcome string `json:"outcome"`
	Error   string `json:"error"`
}

type batchView struct {
	BatchID  string        `json:"batch_id"`
	Kind     string        `json:"kind"`
	Total    int           `json:"total"`
	Failed   int           `json:"failed"`
	Records  []any         `json:"records"`
	Failures []failureView `json:"failures"`
	Archived []string      `json:"archived,omitempty"`
}

func newBatchView(res *batch.Result) batchView {
	view := batchView{
		BatchID:  res.BatchID,
		Kind:     res.Kind,
		Total:    res.Total,
		Failed:   res.Failed,
		Records:  res.Values(),
		Failures: make([]failureView, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		view.Failures = append(view.Failures, failureView{Index: f.Index, Outcome: f.Outcome, Error: f.Err.Error()})
	}
	return view
}

// outcomeTally counts stream decode failures by outcome.
type outcomeTally struct {
	mu     sync.Mutex
	counts map[string]int
}

func newOutcomeTally() *outcomeTally {
	return &outcomeTally{counts: make(map[string]int)}
}

func (t *outcomeTally) observe(m metrics.Metric) {
	if m.Name != metrics.MetricRecordsFailed {
		return
	}
	outcome, _ := m.Fields["outcome"].(string)
	t.mu.Lock()
	t.counts[outcome]++
	t.mu.Unlock()
}

func (t *outcomeTally) snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log := logger.GetLogger()

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		return 1
	}
	if err := log.Configure(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
		MaxAge: cfg.Logging.MaxAge,
		Fields: logger.Fields(cfg.Logging.Fields),
	}); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		return 1
	}
	metrics.Configure(cfg.Metrics)
	if err := metrics.InitCloudWatch(ctx, cfg.Metrics.CloudWatch); err != nil {
		log.WithError(err).Warn("continuing without CloudWatch")
	}
	defer metrics.FlushMetrics(context.Background())
	log.WithComponent("main").WithEnv("APP_ENV", "AWS_REGION").Debug("futurewire starting")

	switch {
	case opts.kinds:
		for _, k := range futures.Kinds() {
			fmt.Fprintln(stdout, k)
		}
		return 0

	case opts.period != "":
		if err := futures.ValidatePeriod(opts.period); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, "ok")
		return 0

	case opts.stream:
		return runStream(ctx, cfg, opts, stdout)

	case opts.kind == "":
		fmt.Fprintln(stderr, "one of -kind, -stream, -period or -kinds is required")
		return 2
	}

	data, err := readInput(opts.in, stdin)
	if err != nil {
		log.WithError(err).Error("failed to read input")
		return 1
	}

	if opts.batch {
		if opts.sdk {
			fmt.Fprintln(stderr, "-sdk cannot be combined with -batch")
			return 2
		}
		return runBatch(ctx, cfg, opts.kind, data, stdout)
	}

	lookup := futures.DecoderFor
	if opts.sdk {
		lookup = sdkcompat.DecoderFor
	}
	dec, err := lookup(opts.kind)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	v, err := dec(data)
	metrics.EmitDecodeMetric(log, opts.kind, err)
	if err != nil {
		log.WithComponent("main").WithError(err).WithFields(logger.Fields{
			"kind":    opts.kind,
			"outcome": metrics.Outcome(err),
		}).Error("decode failed")
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := writeJSON(stdout, v); err != nil {
		log.WithError(err).Error("failed to write output")
		return 1
	}
	return 0
}

func runBatch(ctx context.Context, cfg *config.Config, kind string, data []byte, stdout io.Writer) int {
	log := logger.GetLogger()

	res, err := batch.New(cfg.Batch).Decode(kind, data)
	if err != nil {
		log.WithComponent("main").WithError(err).Error("batch decode failed")
		return 1
	}
	view := newBatchView(res)

	if cfg.Storage.S3.Enabled {
		archiver, err := archive.NewS3Archiver(ctx, cfg.Storage.S3, cfg.Futurewire.Version)
		if err != nil {
			log.WithError(err).Error("failed to create archiver")
			return 1
		}
		keys, err := archiver.PutBatch(ctx, res)
		if err != nil {
			log.WithError(err).Error("failed to archive batch")
			return 1
		}
		view.Archived = keys
	}

	if err := writeJSON(stdout, view); err != nil {
		log.WithError(err).Error("failed to write output")
		return 1
	}
	if res.Failed > 0 {
		return 3
	}
	return 0
}

func runStream(ctx context.Context, cfg *config.Config, opts *options, stdout io.Writer) int {
	log := logger.GetLogger()

	shards := []config.StreamShard{{Name: "default", IP: cfg.Stream.LocalIP, URL: cfg.Stream.URL}}
	if opts.shardPath != "" {
		shardCfg, err := config.LoadStreamShards(opts.shardPath, cfg.Stream.URL)
		if err != nil {
			log.WithError(err).Error("failed to load shard configuration")
			return 1
		}
		shards = shardCfg.Shards
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if strings.ToLower(cfg.Logging.Level) == "report" && cfg.Stream.ReportInterval > 0 {
		logger.StartReport(ctx, log, cfg.Stream.ReportInterval)
	}
	metrics.StartFlusher(ctx)

	failures := newOutcomeTally()
	tallyID := metrics.RegisterMetricHandler(failures.observe)
	defer metrics.UnregisterMetricHandler(tallyID)

	var outMu sync.Mutex
	handler := func(ev futures.Event) {
		outMu.Lock()
		defer outMu.Unlock()
		if err := writeJSON(stdout, futures.WebsocketEvent{Event: ev}); err != nil {
			log.WithError(err).Warn("failed to write event")
		}
	}

	var wg sync.WaitGroup
	for _, shard := range shards {
		wg.Add(1)
		go func(shard config.StreamShard) {
			defer wg.Done()
			total := stream.Follow(ctx, shard, cfg.Stream, 0, handler)
			log.WithComponent("main").WithFields(logger.Fields{
				"stream":  shard.Name,
				"frames":  total.Frames,
				"decoded": total.Decoded,
				"failed":  total.Failed,
			}).Info("stream stopped")
		}(shard)
	}
	log.WithFields(logger.Fields{"shards": len(shards)}).Info("all streams started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.WithFields(logger.Fields{"signal": sig.String()}).Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.WithFields(logger.Fields{"decode_failures": failures.snapshot()}).Info("graceful shutdown completed")
	case <-time.After(30 * time.Second):
		log.Warn("graceful shutdown timeout exceeded")
	}
	return 0
}

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
