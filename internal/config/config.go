package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process settings. Values come from an optional YAML file
// (CONFIG_FILE) and are overridden by environment variables.
type Config struct {
	Port            string        `yaml:"port"`
	DatabaseURL     string        `yaml:"database_url"`
	DBPath          string        `yaml:"db_path"`
	OSRMBaseURL     string        `yaml:"osrm_base_url"`
	OSRMProfile     string        `yaml:"osrm_profile"`
	OSRMRatePerSec  float64       `yaml:"osrm_rate_per_sec"`
	RedisURL        string        `yaml:"redis_url"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	MatrixTimeout   time.Duration `yaml:"matrix_timeout"`
	GeometryTimeout time.Duration `yaml:"geometry_timeout"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		Port:            "8080",
		DBPath:          "data/route_optimizer.db",
		OSRMBaseURL:     "https://router.project-osrm.org",
		OSRMProfile:     "driving",
		OSRMRatePerSec:  1,
		CacheTTL:        24 * time.Hour,
		MatrixTimeout:   30 * time.Second,
		GeometryTimeout: 60 * time.Second,
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds the Config from defaults, the YAML file named by CONFIG_FILE
// (if any) and the environment, in that order of precedence.
func Load() (Config, error) {
	cfg := Defaults()

	if path := Get("CONFIG_FILE", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("load config: parse yaml %q: %w", path, err)
	}

	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = Get("PORT", c.Port)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.DBPath = Get("DB_PATH", c.DBPath)
	c.OSRMBaseURL = strings.TrimRight(Get("OSRM_BASE_URL", c.OSRMBaseURL), "/")
	c.OSRMProfile = Get("OSRM_PROFILE", c.OSRMProfile)
	c.RedisURL = Get("REDIS_URL", c.RedisURL)

	if v := Get("OSRM_RATE_PER_SEC", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("load config: OSRM_RATE_PER_SEC must be a positive number, got %q", v)
		}
		c.OSRMRatePerSec = f
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CACHE_TTL", &c.CacheTTL},
		{"MATRIX_TIMEOUT", &c.MatrixTimeout},
		{"GEOMETRY_TIMEOUT", &c.GeometryTimeout},
	}
	for _, d := range durations {
		v := Get(d.key, "")
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("load config: %s must be a positive duration, got %q", d.key, v)
		}
		*d.dst = parsed
	}

	return nil
}
