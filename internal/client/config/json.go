package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DBPath              string         `json:"db_path"`
	HealthAddr          string         `json:"health_addr"`
	HealthService       string         `json:"health_service"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`

	Remote struct {
		Kind           string         `json:"kind"`
		Timeout        timex.Duration `json:"timeout"`
		SimulatedDelay timex.Duration `json:"simulated_delay"`
		S3Bucket       string         `json:"s3_bucket"`
		S3Region       string         `json:"s3_region"`
		S3Endpoint     string         `json:"s3_endpoint"`
		S3AccessKey    string         `json:"s3_access_key"`
		S3SecretKey    string         `json:"s3_secret_key"`
		S3Prefix       string         `json:"s3_prefix"`
		PostgresDSN    string         `json:"postgres_dsn"`
	} `json:"remote"`

	Log struct {
		Format string `json:"format"`
		Level  string `json:"level"`
	} `json:"log"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.HealthAddr, jc.HealthAddr)
	setString(&cfg.HealthService, jc.HealthService)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)

	setString(&cfg.RemoteKind, jc.Remote.Kind)
	setDuration(&cfg.RemoteTimeout, jc.Remote.Timeout)
	setDuration(&cfg.SimulatedDelay, jc.Remote.SimulatedDelay)
	setString(&cfg.S3Bucket, jc.Remote.S3Bucket)
	setString(&cfg.S3Region, jc.Remote.S3Region)
	setString(&cfg.S3Endpoint, jc.Remote.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.Remote.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.Remote.S3SecretKey)
	setString(&cfg.S3Prefix, jc.Remote.S3Prefix)
	setString(&cfg.PostgresDSN, jc.Remote.PostgresDSN)

	setString(&cfg.LogFormat, jc.Log.Format)
	setString(&cfg.LogLevel, jc.Log.Level)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
