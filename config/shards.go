package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StreamShard binds one user-data stream to the local IP it is read from.
type StreamShard struct {
	Name string `yaml:"name"`
	IP   string `yaml:"ip"`
	URL  string `yaml:"url"`
}

// StreamShards represents the full shard configuration.
type StreamShards struct {
	Shards []StreamShard `yaml:"shards"`
}

// LoadStreamShards loads shard configuration from the given path. Shards
// without a URL inherit fallbackURL. Production-like environments reject
// shards that do not name a local IP.
func LoadStreamShards(path, fallbackURL string) (*StreamShards, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shards file: %w", err)
	}
	var cfg StreamShards
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse shards file: %w", err)
	}

	strict := IsProductionLike(AppEnvironment())
	seen := make(map[string]struct{}, len(cfg.Shards))
	for i := range cfg.Shards {
		s := &cfg.Shards[i]
		s.IP = strings.TrimSpace(s.IP)
		s.URL = strings.TrimSpace(s.URL)
		if s.URL == "" {
			s.URL = fallbackURL
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("shard-%d", i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("shard %q declared twice", s.Name)
		}
		seen[s.Name] = struct{}{}

		if s.URL == "" {
			return nil, fmt.Errorf("shard %q has no stream url", s.Name)
		}
		if s.IP == "" {
			if strict {
				return nil, fmt.Errorf("shard %q has no ip in %s", s.Name, AppEnvironment())
			}
			continue
		}
		if !isValidIP(s.IP) {
			return nil, fmt.Errorf("shard %q ip '%s' is invalid", s.Name, s.IP)
		}
	}
	return &cfg, nil
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
