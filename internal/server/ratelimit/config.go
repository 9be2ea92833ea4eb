package ratelimit

import (
	"slices"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path (a trailing "/" enables prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Limiters unused for this long are dropped
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds the configuration for the match and chat endpoints.
// Endpoints without a config are not limited.
func NewConfig(enabled bool, matchPerMinute, chatPerMinute int, whitelist string) *Config {
	return &Config{
		Enabled:         enabled,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       parseIPList(whitelist),
		EndpointConfigs: DefaultEndpointConfigs(matchPerMinute, chatPerMinute),
	}
}

// DefaultEndpointConfigs returns the per-minute limits for the analysis endpoints.
func DefaultEndpointConfigs(matchPerMinute, chatPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/match", Method: "POST", Limit: matchPerMinute, Window: time.Minute, Burst: burstFor(matchPerMinute)},
		{Path: "/api/chat", Method: "POST", Limit: chatPerMinute, Window: time.Minute, Burst: burstFor(chatPerMinute)},
	}
}

// EndpointFor returns the limit for a request, or nil when it is not limited.
// Exact paths win over prefix paths (a configured path ending in "/"). GET /health is never limited.
func (c *Config) EndpointFor(method, path string) *EndpointConfig {
	if method == "GET" && path == "/health" {
		return nil
	}

	if i := slices.IndexFunc(c.EndpointConfigs, func(ec EndpointConfig) bool {
		return ec.Method == method && ec.Path == path
	}); i >= 0 {
		return &c.EndpointConfigs[i]
	}

	if i := slices.IndexFunc(c.EndpointConfigs, func(ec EndpointConfig) bool {
		return ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path)
	}); i >= 0 {
		return &c.EndpointConfigs[i]
	}
	return nil
}

// burstFor allows a short burst of a sixth of the per-minute limit, at least one request.
func burstFor(limit int) int {
	return max(1, limit/6)
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
