package settings

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultHost is the CircleCI server the tool talks to unless --host is given.
	DefaultHost = "https://circleci.com"
	// DefaultRestEndpoint is the versioned REST API root on the host.
	DefaultRestEndpoint = "api/v1.1"
)

// Config is used to represent the current state of a CLI instance.
// It is filled from command-line flags only.
type Config struct {
	Host         string
	RestEndpoint string
	Token        string
	Debug        bool
	HTTPClient   *http.Client
}

// New returns a Config pointing at the public CircleCI API with a client
// that uses the library default timeouts.
func New() *Config {
	return &Config{
		Host:         DefaultHost,
		RestEndpoint: DefaultRestEndpoint,
		HTTPClient:   &http.Client{},
	}
}

// ServerURL returns the absolute base URL of the REST API.
// An absolute RestEndpoint wins over Host.
func (cfg *Config) ServerURL() (*url.URL, error) {
	return ServerAddress(cfg.RestEndpoint, cfg.Host)
}

// ServerAddress resolves endpoint against host and returns the result with a
// trailing slash so relative API paths can be resolved against it.
func ServerAddress(endpoint, host string) (*url.URL, error) {
	e, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("Parsing endpoint '%s': %w", endpoint, err)
	}

	var u *url.URL
	if e.IsAbs() {
		u = e
	} else {
		h, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("Parsing host '%s': %w", host, err)
		}
		if !h.IsAbs() {
			return nil, fmt.Errorf("Host (%s) must be absolute URL, including scheme", host)
		}
		if !strings.HasSuffix(h.Path, "/") {
			h.Path += "/"
		}
		u = h.ResolveReference(e)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
