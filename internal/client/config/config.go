package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/remote"
)

type Config struct {
	DBPath string

	// HealthAddr is probed for grpc.health.v1; empty means always online.
	HealthAddr          string
	HealthService       string
	OnlineCheckInterval time.Duration

	RemoteKind     string
	RemoteTimeout  time.Duration
	SimulatedDelay time.Duration

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string

	PostgresDSN string

	LogFormat string
	LogLevel  string
}

func (c *Config) LoadDefaults() {
	c.DBPath = "notes.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RemoteKind = remote.KindNone
	c.RemoteTimeout = 30 * time.Second
	c.S3Region = "us-east-1"
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Remote returns the settings of the configured sync target.
func (c *Config) Remote() remote.Config {
	return remote.Config{
		Kind:           c.RemoteKind,
		SimulatedDelay: c.SimulatedDelay,
		S3: remote.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Prefix:    c.S3Prefix,
		},
		PostgresDSN: c.PostgresDSN,
	}
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// LoadConfig builds a Config from defaults, the environment, an optional JSON
// file and args (without the program name), in that order.
func LoadConfig(args []string, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, lookup); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the process command line and environment.
func Load() (*Config, error) {
	return LoadConfig(os.Args[1:], os.LookupEnv)
}
