package stream

import (
	"context"
	"errors"
	"time"

	appconfig "futurewire/config"
	"futurewire/logger"
)

const defaultReconnectDelay = 5 * time.Second

// dialFunc is replaced in tests.
var dialFunc = func(ctx context.Context, shard appconfig.StreamShard, cfg appconfig.StreamConfig) (FrameReader, error) {
	return Dial(ctx, shard.URL, shard.IP, cfg)
}

// Follow keeps one shard connected until ctx is cancelled, dialing again
// after every dial or read failure. It returns the totals across connections.
func Follow(ctx context.Context, shard appconfig.StreamShard, cfg appconfig.StreamConfig, reconnect time.Duration, handler Handler) Stats {
	if reconnect <= 0 {
		reconnect = defaultReconnectDelay
	}
	log := logger.GetLogger().WithComponent("stream").WithFields(logger.Fields{
		"stream":   shard.Name,
		"endpoint": shard.URL,
		"local_ip": shard.IP,
	})

	var total Stats
	for {
		if ctx.Err() != nil {
			return total
		}

		reader, err := dialFunc(ctx, shard, cfg)
		if err != nil {
			log.WithError(err).Warn("failed to connect to user-data stream")
		} else {
			log.Info("connected to user-data stream")
			c := NewConsumer(shard.Name, reader, cfg)
			err = c.Run(ctx, handler)
			s := c.Stats()
			total.Frames += s.Frames
			total.Decoded += s.Decoded
			total.Failed += s.Failed
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return total
			}
			log.WithError(err).Warn("user-data stream error, reconnecting")
		}

		select {
		case <-time.After(reconnect):
		case <-ctx.Done():
			return total
		}
	}
}
