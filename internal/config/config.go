// Package config loads the classify settings from a TOML, YAML or JSON file
// and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
)

// DefaultBaseURL is the production classification service.
const DefaultBaseURL = "https://bajaj-backend-production-e983.up.railway.app"

// Output formats understood by the submit command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// Environment variables read by ApplyEnv.
const (
	EnvEndpoint = "CLASSIFY_ENDPOINT"
	EnvTimeout  = "CLASSIFY_TIMEOUT"
	EnvAddr     = "CLASSIFY_ADDR"
	EnvPort     = "PORT"
)

type Config struct {
	Service ServiceConfig `toml:"service" yaml:"service" json:"service"`
	Server  ServerConfig  `toml:"server" yaml:"server" json:"server"`
	Output  OutputConfig  `toml:"output" yaml:"output" json:"output"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme" json:"theme"`
}

// ServiceConfig points at the remote classifier. Contract optionally names an
// OpenAPI document replacing the embedded one.
type ServiceConfig struct {
	Endpoint string `toml:"endpoint" yaml:"endpoint" json:"endpoint"`
	Timeout  string `toml:"timeout" yaml:"timeout" json:"timeout"`
	Contract string `toml:"contract" yaml:"contract" json:"contract"`
}

type ServerConfig struct {
	Addr     string `toml:"addr" yaml:"addr" json:"addr"`
	Grace    string `toml:"grace" yaml:"grace" json:"grace"`
	BasePath string `toml:"base_path" yaml:"base_path" json:"base_path"`
	Release  bool   `toml:"release" yaml:"release" json:"release"`
}

type OutputConfig struct {
	Format  string   `toml:"format" yaml:"format" json:"format"`
	Filters []string `toml:"filters" yaml:"filters" json:"filters"`
}

// ThemeConfig picks the page look. Templates optionally names a directory
// whose files override the built-in page templates.
type ThemeConfig struct {
	Name      string `toml:"name" yaml:"name" json:"name"`
	Variant   string `toml:"variant" yaml:"variant" json:"variant"`
	Templates string `toml:"templates" yaml:"templates" json:"templates"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint: DefaultBaseURL,
			Timeout:  "10s",
		},
		Server: ServerConfig{
			Addr:  ":8383",
			Grace: "5s",
		},
		Output: OutputConfig{
			Format:  FormatText,
			Filters: projection.DefaultFilters().Strings(),
		},
		Theme: ThemeConfig{
			Name:    "classic",
			Variant: "light",
		},
	}
}

// Load reads path over the defaults, then applies the environment. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := Decode(cfg, filepath.Ext(path), data); err != nil {
				return nil, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// Decode merges data into cfg according to the file extension.
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		return toml.Unmarshal(data, cfg)
	case "yaml", "yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return yaml.Unmarshal(data, cfg)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// ApplyEnv overrides fields from lookup. PORT only replaces the port of the
// listen address; CLASSIFY_ADDR wins over it.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if v, ok := lookup(EnvEndpoint); ok && strings.TrimSpace(v) != "" {
		c.Service.Endpoint = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		c.Service.Timeout = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPort); ok && strings.TrimSpace(v) != "" {
		host, _, err := net.SplitHostPort(c.Server.Addr)
		if err != nil {
			host = ""
		}
		c.Server.Addr = net.JoinHostPort(host, strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Server.Addr = strings.TrimSpace(v)
	}
}

// Validate checks every field that is parsed later.
func (c *Config) Validate() error {
	var errs []error

	if c.Service.Endpoint != "" {
		u, err := url.Parse(c.Service.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("service.endpoint %q is not an http(s) URL", c.Service.Endpoint))
		}
	}
	if _, err := c.ServiceTimeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.GraceTimeout(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatHTML:
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of text, json, html", c.Output.Format))
	}
	if _, err := c.FilterSet(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ServiceTimeout parses Service.Timeout. Empty means no client timeout.
func (c *Config) ServiceTimeout() (time.Duration, error) {
	return parseDuration("service.timeout", c.Service.Timeout)
}

// GraceTimeout parses Server.Grace.
func (c *Config) GraceTimeout() (time.Duration, error) {
	return parseDuration("server.grace", c.Server.Grace)
}

// FilterSet parses Output.Filters. A nil list means every filter.
func (c *Config) FilterSet() (projection.FilterSet, error) {
	if c.Output.Filters == nil {
		return projection.DefaultFilters(), nil
	}
	set, err := projection.ParseFilters(c.Output.Filters)
	if err != nil {
		return 0, fmt.Errorf("output.filters: %w", err)
	}
	return set, nil
}

func parseDuration(field, raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", field, raw)
	}
	return d, nil
}
