package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "NOTES_"

// parseEnv overlays NOTES_* variables. Values from the -env dotenv file are
// used only where lookup has nothing.
func parseEnv(cfg *Config, args []string, lookup LookupFunc) error {
	file := map[string]string{}
	if path := flagx.EnvFile(args); path != "" {
		m, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read env file: %w", err)
		}
		file = m
	}

	get := func(name string) (string, bool) {
		key := envPrefix + name
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := file[key]
		return v, ok
	}

	strs := map[string]*string{
		"DB":             &cfg.DBPath,
		"HEALTH_ADDR":    &cfg.HealthAddr,
		"HEALTH_SERVICE": &cfg.HealthService,
		"REMOTE":         &cfg.RemoteKind,
		"S3_BUCKET":      &cfg.S3Bucket,
		"S3_REGION":      &cfg.S3Region,
		"S3_ENDPOINT":    &cfg.S3Endpoint,
		"S3_ACCESS_KEY":  &cfg.S3AccessKey,
		"S3_SECRET_KEY":  &cfg.S3SecretKey,
		"S3_PREFIX":      &cfg.S3Prefix,
		"POSTGRES_DSN":   &cfg.PostgresDSN,
		"LOG_FORMAT":     &cfg.LogFormat,
		"LOG_LEVEL":      &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	durs := map[string]*time.Duration{
		"ONLINE_INTERVAL": &cfg.OnlineCheckInterval,
		"REMOTE_TIMEOUT":  &cfg.RemoteTimeout,
		"REMOTE_DELAY":    &cfg.SimulatedDelay,
	}
	for name, dst := range durs {
		v, ok := get(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
