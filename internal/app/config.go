package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the complete application configuration, loadable from
// environment variables (BACKOFFICE_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"API server listen address"`
	MaxBodyBytes int64  `default:"1048576" usage:"Maximum request body size" flag:"max-body-bytes"`
	Latency      LatencyConfig
	Store        StoreConfig
	Seed         SeedConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// LatencyConfig sets the simulated store delays.
type LatencyConfig struct {
	Read  time.Duration `default:"300ms" usage:"Simulated delay of store reads"`
	Write time.Duration `default:"500ms" usage:"Simulated delay of store writes"`
}

// StoreConfig controls store failure injection.
type StoreConfig struct {
	FailEvery int `default:"0" usage:"Fail every n-th store call, 0 disables" flag:"store-fail-every"`
}

// SeedConfig locates extra seed files.
type SeedConfig struct {
	Dir string `default:"" usage:"Directory with <collection>.json[.gz] seed files" flag:"seed-dir"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		EnvPrefix: "BACKOFFICE",
		Files:     []string{"config.yaml", "/etc/backoffice/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func loadConfig(ac aconfig.Config) (*Config, error) {
	var cfg Config
	if err := aconfig.LoaderFor(&cfg, ac).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the PORT variable set by hosting platforms to
// Addr unless Addr was configured explicitly.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}

func (c *Config) validate() error {
	switch {
	case c.Latency.Read < 0 || c.Latency.Write < 0:
		return errors.New("latency must not be negative")
	case c.Store.FailEvery < 0:
		return errors.New("store fail-every must not be negative")
	case c.MaxBodyBytes <= 0:
		return errors.New("max body bytes must be positive")
	}
	return nil
}
