package logger

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type kindStat struct {
	decoded int64
	failed  int64
	bytes   int64
}

type componentStat struct {
	warns  int64
	errors int64
}

var (
	kinds      sync.Map // map[string]*kindStat
	components sync.Map // map[string]*componentStat
)

func componentFor(name string) *componentStat {
	v, _ := components.LoadOrStore(name, &componentStat{})
	return v.(*componentStat)
}

func recordWarn(component string) {
	atomic.AddInt64(&componentFor(component).warns, 1)
}

func recordError(component string) {
	atomic.AddInt64(&componentFor(component).errors, 1)
}

// RecordDecode counts one decode attempt for kind.
func RecordDecode(kind string, ok bool, size int) {
	v, _ := kinds.LoadOrStore(kind, &kindStat{})
	ks := v.(*kindStat)
	if ok {
		atomic.AddInt64(&ks.decoded, 1)
	} else {
		atomic.AddInt64(&ks.failed, 1)
	}
	atomic.AddInt64(&ks.bytes, int64(size))
}

// KindCounts is a point-in-time copy of the decode counters for one kind.
type KindCounts struct {
	Decoded int64
	Failed  int64
	Bytes   int64
}

// Snapshot returns the decode counters keyed by kind.
func Snapshot() map[string]KindCounts {
	out := map[string]KindCounts{}
	kinds.Range(func(k, v any) bool {
		ks := v.(*kindStat)
		out[k.(string)] = KindCounts{
			Decoded: atomic.LoadInt64(&ks.decoded),
			Failed:  atomic.LoadInt64(&ks.failed),
			Bytes:   atomic.LoadInt64(&ks.bytes),
		}
		return true
	})
	return out
}

// StartReport begins periodic logging of decode and runtime statistics
// until ctx is cancelled.
func StartReport(ctx context.Context, log *Log, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logReport(log)
			}
		}
	}()
}

func reportFields() Fields {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	kindData := map[string]map[string]int64{}
	for name, c := range Snapshot() {
		kindData[name] = map[string]int64{
			"decoded": c.Decoded,
			"failed":  c.Failed,
			"bytes":   c.Bytes,
		}
	}

	var names []string
	componentData := map[string]map[string]int64{}
	components.Range(func(k, v any) bool {
		cs := v.(*componentStat)
		names = append(names, k.(string))
		componentData[k.(string)] = map[string]int64{
			"warns":  atomic.LoadInt64(&cs.warns),
			"errors": atomic.LoadInt64(&cs.errors),
		}
		return true
	})
	sort.Strings(names)

	return Fields{
		"kinds":          kindData,
		"components":     componentData,
		"component_list": names,
		"goroutines":     runtime.NumGoroutine(),
		"heap_mb":        int64(mem.HeapAlloc) / 1024 / 1024,
	}
}

func logReport(log *Log) {
	log.WithComponent("report").WithFields(reportFields()).Info("runtime report")
}
