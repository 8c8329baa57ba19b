package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SensorSourceSimulated = "simulated"
	SensorSourceRemote    = "remote"
)

// Config es la configuración del API. Se arma en este orden: defaults,
// archivo YAML opcional (CONFIG_FILE) y por último variables de entorno.
type Config struct {
	AppName string `yaml:"app_name"`
	Port    string `yaml:"port"`

	Log LogConfig `yaml:"log"`

	// DBDSN vacío = historial de estimaciones en memoria.
	DBDSN string `yaml:"db_dsn"`
	// RedisAddr vacío = última lectura de sensores en memoria.
	RedisAddr string `yaml:"redis_addr"`

	Backend   BackendConfig   `yaml:"backend"`
	Sensors   SensorsConfig   `yaml:"sensors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

type BackendConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type SensorsConfig struct {
	Source      string `yaml:"source"` // simulated | remote
	Interval    string `yaml:"interval"`
	HistorySize int    `yaml:"history_size"`
}

type RateLimitConfig struct {
	// PerMinute son los requests permitidos por IP y minuto en las rutas
	// que llaman al backend. 0 desactiva el límite.
	PerMinute int `yaml:"per_minute"`
}

// DefaultBackendURL es donde corre el backend de ML en desarrollo.
// BACKEND_URL="" lo desactiva.
const DefaultBackendURL = "http://127.0.0.1:8000"

func Default() *Config {
	return &Config{
		AppName: "prawn-monitoring",
		Port:    "8080",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: "10s",
		},
		Sensors: SensorsConfig{
			Source:      SensorSourceSimulated,
			Interval:    "5s",
			HistorySize: 60,
		},
		RateLimit: RateLimitConfig{
			PerMinute: 5,
		},
	}
}

// Load lee path (si existe) y aplica las variables de entorno encima.
// path vacío = solo defaults + entorno.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// sin archivo, seguimos con defaults
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv es Load(CONFIG_FILE).
func FromEnv() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

func (c *Config) applyEnv() error {
	c.AppName = getEnv("APP_NAME", c.AppName)
	c.Port = getEnv("PORT", c.Port)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.DBDSN = getEnv("DB_DSN", c.DBDSN)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.Backend.URL = getEnv("BACKEND_URL", c.Backend.URL)
	c.Backend.Timeout = getEnv("BACKEND_TIMEOUT", c.Backend.Timeout)
	c.Sensors.Source = getEnv("SENSOR_SOURCE", c.Sensors.Source)
	c.Sensors.Interval = getEnv("SENSOR_INTERVAL", c.Sensors.Interval)

	if v, ok := os.LookupEnv("RATE_LIMIT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("RATE_LIMIT must be an integer: %w", err)
		}
		c.RateLimit.PerMinute = n
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}

	switch c.Sensors.Source {
	case SensorSourceSimulated:
	case SensorSourceRemote:
		if strings.TrimSpace(c.Backend.URL) == "" {
			return errors.New("BACKEND_URL is required when SENSOR_SOURCE=remote")
		}
	default:
		return fmt.Errorf("SENSOR_SOURCE must be %q or %q, got %q", SensorSourceSimulated, SensorSourceRemote, c.Sensors.Source)
	}

	if _, err := parsePositiveDuration("BACKEND_TIMEOUT", c.Backend.Timeout); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("SENSOR_INTERVAL", c.Sensors.Interval); err != nil {
		return err
	}
	if c.Sensors.HistorySize < 0 {
		return errors.New("sensors.history_size must be >= 0")
	}
	if c.RateLimit.PerMinute < 0 {
		return errors.New("RATE_LIMIT must be >= 0")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) BackendTimeout() time.Duration {
	d, err := parsePositiveDuration("BACKEND_TIMEOUT", c.Backend.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func (c *Config) SensorInterval() time.Duration {
	d, err := parsePositiveDuration("SENSOR_INTERVAL", c.Sensors.Interval)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

func parsePositiveDuration(name, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return d, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
