package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWithComponent(t *testing.T) {
	log := Logger()
	entry := log.WithComponent("test")
	if v, ok := entry.Entry.Data["component"]; !ok || v != "test" {
		t.Fatalf("component field missing: %v", entry.Entry.Data)
	}
}

func TestConfigureInvalidLevel(t *testing.T) {
	// Ensure environment variables do not override the provided level
	t.Setenv("LOG_LEVEL", "")

	log := Logger()
	if err := log.Configure(Options{Level: "invalid", Format: "json", Output: "stdout"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if err := log.Configure(Options{Level: "info", Format: "xml", Output: "stdout"}); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestConfigureFileOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "futurewire.log")
	log := Logger()
	if err := log.Configure(Options{Level: "debug", Format: "text", Output: path, Fields: Fields{"service": "futurewire"}}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	log.WithComponent("file").Info("hello")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte("hello")) {
		t.Fatalf("log file missing message: %s", data)
	}
	if !bytes.Contains(data, []byte("service=futurewire")) {
		t.Fatalf("log file missing static field: %s", data)
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	log := Logger()
	entry := log.WithEnv("FOO")
	if v, ok := entry.Entry.Data["FOO"]; !ok || v != "bar" {
		t.Fatalf("env field not set: %v", entry.Entry.Data)
	}
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	log := Logger()
	log.SetOutput(&buf)
	log.WithComponent("codec").WithFields(Fields{"kind": "order"}).Info("decoded")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not json: %v (%s)", err, buf.String())
	}
	for _, key := range []string{"timestamp", "level", "message", "component", "kind"} {
		if _, ok := line[key]; !ok {
			t.Errorf("missing key %q in %v", key, line)
		}
	}
}

func TestWarnAndErrorCountedPerComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Logger()
	log.SetOutput(&buf)

	before := componentFor("counted")
	warns, errs := before.warns, before.errors
	log.WithComponent("counted").Warn("w")
	log.WithComponent("counted").Error("e")
	log.WithComponent("counted").Error("e")

	after := componentFor("counted")
	if after.warns != warns+1 || after.errors != errs+2 {
		t.Fatalf("unexpected counters warns=%d errors=%d", after.warns, after.errors)
	}
}

func TestRecordDecodeSnapshot(t *testing.T) {
	RecordDecode("snapshot_test", true, 10)
	RecordDecode("snapshot_test", false, 5)

	c, ok := Snapshot()["snapshot_test"]
	if !ok {
		t.Fatalf("kind missing from snapshot")
	}
	if c.Decoded != 1 || c.Failed != 1 || c.Bytes != 15 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if _, ok := reportFields()["kinds"].(map[string]map[string]int64)["snapshot_test"]; !ok {
		t.Fatalf("report fields missing kind")
	}
}

func TestIsWrapperFrame(t *testing.T) {
	cases := map[string]bool{
		"github.com/sirupsen/logrus.(*Entry).Log":          true,
		"futurewire/logger.(*Entry).Warn":                  true,
		"futurewire/internal/metrics.recordMetric":         true,
		"futurewire/internal/batch.(*Decoder).Decode":      false,
		"futurewire/internal/stream.(*Consumer).Run.func1": false,
	}
	for fn, want := range cases {
		if got := isWrapperFrame(fn); got != want {
			t.Errorf("isWrapperFrame(%q) = %v, want %v", fn, got, want)
		}
	}
}

func framesOf(fns ...string) func() (runtime.Frame, bool) {
	i := 0
	return func() (runtime.Frame, bool) {
		f := runtime.Frame{Function: fns[i]}
		i++
		return f, i < len(fns)
	}
}

func TestFirstCallerConsidersLastFrame(t *testing.T) {
	f, ok := firstCaller(framesOf(
		"github.com/sirupsen/logrus.(*Entry).Log",
		"futurewire/logger.(*Entry).Info",
		"futurewire/internal/batch.(*Decoder).Decode",
	))
	if !ok || f.Function != "futurewire/internal/batch.(*Decoder).Decode" {
		t.Fatalf("expected last frame as caller, got %q (ok=%v)", f.Function, ok)
	}

	if _, ok := firstCaller(framesOf("github.com/sirupsen/logrus.(*Entry).Log")); ok {
		t.Fatalf("wrapper-only stack should not yield a caller")
	}
}
