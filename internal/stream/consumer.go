// Package stream reads user-data stream frames from a websocket and decodes
// them into futures events.
package stream

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	appconfig "futurewire/config"
	"futurewire/futures"
	metrics "futurewire/internal/metrics"
	"futurewire/logger"
)

// FrameReader yields one websocket message per call. *websocket.Conn satisfies it.
type FrameReader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// Handler receives every frame that decodes into a known event.
type Handler func(futures.Event)

// Stats counts frames seen by a Consumer.
type Stats struct {
	Frames  int64
	Decoded int64
	Failed  int64
}

// Dial opens a websocket to url. A non-empty localIP binds the outgoing
// connection to that address.
func Dial(ctx context.Context, url, localIP string, cfg appconfig.StreamConfig) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
		ReadBufferSize:   cfg.ReadBufferBytes,
		Proxy:            http.ProxyFromEnvironment,
	}
	if localIP = strings.TrimSpace(localIP); localIP != "" {
		if ip := net.ParseIP(localIP); ip != nil {
			dialer.NetDialContext = (&net.Dialer{LocalAddr: &net.TCPAddr{IP: ip}}).DialContext
		}
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Consumer decodes frames from one FrameReader. A frame that fails to decode
// is counted and logged, never fatal.
type Consumer struct {
	name    string
	reader  FrameReader
	log     *logger.Log
	limiter *rate.Limiter

	frames  atomic.Int64
	decoded atomic.Int64
	failed  atomic.Int64
}

// NewConsumer wraps r. Failure warnings are throttled to FailureLogBurst per
// FailureLogInterval.
func NewConsumer(name string, r FrameReader, cfg appconfig.StreamConfig) *Consumer {
	interval := cfg.FailureLogInterval
	if interval <= 0 {
		interval = time.Second
	}
	burst := cfg.FailureLogBurst
	if burst <= 0 {
		burst = 1
	}
	return &Consumer{
		name:    name,
		reader:  r,
		log:     logger.GetLogger(),
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Stats returns the counters accumulated so far.
func (c *Consumer) Stats() Stats {
	return Stats{
		Frames:  c.frames.Load(),
		Decoded: c.decoded.Load(),
		Failed:  c.failed.Load(),
	}
}

// Run reads until the reader fails or ctx is cancelled. When the reader is
// also an io.Closer it is closed on cancellation to unblock the read. The
// returned error is ctx.Err() after cancellation, otherwise the read error.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	log := c.log.WithComponent("stream").WithFields(logger.Fields{"stream": c.name})

	done := make(chan struct{})
	defer close(done)
	if closer, ok := c.reader.(io.Closer); ok {
		go func() {
			select {
			case <-ctx.Done():
				closer.Close()
			case <-done:
			}
		}()
	}

	for {
		_, raw, err := c.reader.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		c.frames.Add(1)
		metrics.EmitFrameMetric(c.log, c.name, len(raw))

		ev, err := futures.DecodeEvent(raw)
		metrics.EmitDecodeMetric(c.log, "ws_event", err)
		logger.RecordDecode("ws_event", err == nil, len(raw))
		if err != nil {
			c.failed.Add(1)
			if c.limiter.Allow() {
				log.WithError(err).WithFields(logger.Fields{
					"outcome": metrics.Outcome(err),
					"failed":  c.failed.Load(),
				}).Warn("failed to decode stream frame")
			}
			continue
		}
		c.decoded.Add(1)
		if handler != nil {
			handler(ev)
		}
	}
}
