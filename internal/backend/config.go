package backend

import (
	"strings"
	"time"
)

// Placeholder values shipped in example env files; treated as "not configured".
const (
	placeholderURL = "your-project-url"
	placeholderKey = "your-anon-key"
)

const defaultTimeout = 15 * time.Second

// Config holds the backend endpoint and access key.
type Config struct {
	URL       string
	Key       string
	JWTSecret string        // optional; enables verified access-token parsing
	Timeout   time.Duration // per-request HTTP timeout of the real client
}

// IsConfigured reports whether url and key are usable for the real backend.
func IsConfigured(url, key string) bool {
	return url != "" && key != "" &&
		url != placeholderURL &&
		key != placeholderKey
}

// Configured reports whether c selects the real backend.
func (c Config) Configured() bool {
	return IsConfigured(c.URL, c.Key)
}

func (c Config) baseURL() string {
	return strings.TrimRight(c.URL, "/")
}
