package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
)

const envPrefix = "SNAPSITE"

// Config holds the application configuration.
type Config struct {
	SiteDir  string
	URL      string
	OutDir   string
	Headless bool
	HostPort string
	Protocol string
	Include  string
	Excludes []string
	Height   int
	Width    int
	Dark     bool
	Wait     bool

	PageLoadTimeout time.Duration
	ChromePath      string
	RemoteURL       string

	LogLevel  string
	LogFormat string

	StatusAddr   string
	MetricsFile  string
	ManifestPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PostgresURL string

	// ConfigFile is the optional file the values above were layered from.
	ConfigFile string
}

// NewFlagSet declares every command line option with its default.
func NewFlagSet(output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("snapsite", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.String("site-dir", "", "The root directory containing the static site files")
	fs.String("url", "", "The URL to screenshot")
	fs.String("out-dir", "", "The path where the screenshots should be saved (required)")
	fs.Bool("headless", true, "Run the browser in headless mode (--headless=false for a visible window)")
	fs.String("host-port", "", "The host and port where the static site is being served, like localhost:8080")
	fs.String("protocol", "http", "The protocol used to access the webserver (http or https)")
	fs.String("include", "**/*.html", "A glob pattern of files to include")
	fs.String("exclude", "", "A comma separated list of glob patterns to exclude")
	fs.Int("height", 600, "The height of the viewport and the screenshot if the page does not scroll vertically")
	fs.Int("width", 1200, "The width of the viewport and the resulting screenshot")
	fs.Bool("dark", false, "Set prefers-color-scheme to dark")
	fs.Bool("wait", false, "Do not terminate the process but wait for Ctrl-C keeping the browser open")

	fs.Duration("timeout", 30*time.Second, "Maximum time to wait for a single page to load")
	fs.String("chrome-path", "", "Path to the Chrome/Chromium executable")
	fs.String("remote-url", "", "DevTools websocket URL of an already running browser")

	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-format", "console", "Log format (console, json)")

	fs.String("status-addr", "", "Serve /metrics and /api endpoints on this address, like :9090")
	fs.String("metrics-file", "", "Write Prometheus metrics in textfile format to this path on exit")
	fs.String("manifest", "", "Write a YAML manifest of all captures to this path")
	fs.String("redis-addr", "", "Store capture records in Redis at this address")
	fs.String("redis-password", "", "Redis password")
	fs.Int("redis-db", 0, "Redis database number")
	fs.String("postgres-url", "", "Store capture records in PostgreSQL (connection string)")

	fs.String("config", "", "Optional config file (yaml, toml, json or env)")
	return fs
}

// Load parses args, layers SNAPSITE_* environment variables and the optional
// config file underneath them, and validates the result.
func Load(args []string, output io.Writer) (*Config, error) {
	fs := NewFlagSet(output)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrConfiguration, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", repository.ErrConfiguration, fs.Args())
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading config file %s: %v", repository.ErrConfiguration, path, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		SiteDir:         v.GetString("site-dir"),
		URL:             v.GetString("url"),
		OutDir:          v.GetString("out-dir"),
		Headless:        v.GetBool("headless"),
		HostPort:        v.GetString("host-port"),
		Protocol:        v.GetString("protocol"),
		Include:         v.GetString("include"),
		Excludes:        SplitExcludes(v.GetString("exclude")),
		Height:          v.GetInt("height"),
		Width:           v.GetInt("width"),
		Dark:            v.GetBool("dark"),
		Wait:            v.GetBool("wait"),
		PageLoadTimeout: v.GetDuration("timeout"),
		ChromePath:      v.GetString("chrome-path"),
		RemoteURL:       v.GetString("remote-url"),
		LogLevel:        v.GetString("log-level"),
		LogFormat:       v.GetString("log-format"),
		StatusAddr:      v.GetString("status-addr"),
		MetricsFile:     v.GetString("metrics-file"),
		ManifestPath:    v.GetString("manifest"),
		RedisAddr:       v.GetString("redis-addr"),
		RedisPassword:   v.GetString("redis-password"),
		RedisDB:         v.GetInt("redis-db"),
		PostgresURL:     v.GetString("postgres-url"),
		ConfigFile:      v.GetString("config"),
	}
}

// SplitExcludes splits a comma separated pattern list, dropping empty entries.
func SplitExcludes(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks option combinations. It performs no I/O.
func (c *Config) Validate() error {
	var problems []string
	if c.OutDir == "" {
		problems = append(problems, "--out-dir is required")
	}
	switch {
	case c.URL != "" && c.SiteDir != "":
		problems = append(problems, "--url and --site-dir are mutually exclusive")
	case c.URL != "" && c.HostPort != "":
		problems = append(problems, "--url and --host-port are mutually exclusive")
	case c.URL == "" && c.SiteDir == "":
		problems = append(problems, "one of --site-dir or --url is required")
	case c.SiteDir != "" && c.HostPort == "":
		problems = append(problems, "--host-port is required with --site-dir")
	}
	if c.Protocol != "http" && c.Protocol != "https" {
		problems = append(problems, fmt.Sprintf("--protocol must be http or https, got %q", c.Protocol))
	}
	if c.Width <= 0 || c.Height <= 0 {
		problems = append(problems, fmt.Sprintf("viewport must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.PageLoadTimeout <= 0 {
		problems = append(problems, "--timeout must be positive")
	}
	if c.Include == "" && c.SiteDir != "" {
		problems = append(problems, "--include must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", repository.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// Mode reports which input resolution strategy the configuration selects.
func (c *Config) Mode() entity.Mode {
	if c.URL != "" {
		return entity.ModeURL
	}
	return entity.ModeDirectory
}
