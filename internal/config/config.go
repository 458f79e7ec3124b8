package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from, in increasing priority:
// defaults, the YAML file named by CONFIG_FILE, then environment variables
// (including those loaded from .env).
type Config struct {
	Port                    string   `yaml:"port"`
	CORSAllowedOrigins      []string `yaml:"cors_allowed_origins"`
	RateLimitRPS            float64  `yaml:"rate_limit_rps"`
	RateLimitBurst          int      `yaml:"rate_limit_burst"`
	MaxLocations            int      `yaml:"max_locations"`
	MaxVehicles             int      `yaml:"max_vehicles"`
	ImproveRoutes           bool     `yaml:"improve_routes"`
	ImproveMaxRounds        int      `yaml:"improve_max_rounds"`
	MatrixParallelThreshold int      `yaml:"matrix_parallel_threshold"`
}

func Default() Config {
	return Config{
		Port:                    "8080",
		CORSAllowedOrigins:      []string{"*"},
		RateLimitRPS:            0,
		RateLimitBurst:          20,
		MaxLocations:            1000,
		MaxVehicles:             100,
		ImproveRoutes:           true,
		ImproveMaxRounds:        50,
		MatrixParallelThreshold: 64,
	}
}

// Load builds the Config for the current process.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg. Keys absent from the file keep their value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml %q: %w", path, err)
	}

	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port must be non-empty")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must be >= 0, got %v", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("rate_limit_burst must be >= 1 when rate limiting, got %d", c.RateLimitBurst)
	}
	if c.MaxLocations < 1 {
		return fmt.Errorf("max_locations must be >= 1, got %d", c.MaxLocations)
	}
	if c.MaxVehicles < 1 {
		return fmt.Errorf("max_vehicles must be >= 1, got %d", c.MaxVehicles)
	}
	if c.ImproveMaxRounds < 0 {
		return fmt.Errorf("improve_max_rounds must be >= 0, got %d", c.ImproveMaxRounds)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = Get("PORT", cfg.Port)

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSAllowedOrigins = origins
	}

	var err error
	if cfg.RateLimitRPS, err = GetFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return err
	}
	if cfg.RateLimitBurst, err = GetInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return err
	}
	if cfg.MaxLocations, err = GetInt("MAX_LOCATIONS", cfg.MaxLocations); err != nil {
		return err
	}
	if cfg.MaxVehicles, err = GetInt("MAX_VEHICLES", cfg.MaxVehicles); err != nil {
		return err
	}
	if cfg.ImproveRoutes, err = GetBool("IMPROVE_ROUTES", cfg.ImproveRoutes); err != nil {
		return err
	}
	if cfg.ImproveMaxRounds, err = GetInt("IMPROVE_MAX_ROUNDS", cfg.ImproveMaxRounds); err != nil {
		return err
	}
	if cfg.MatrixParallelThreshold, err = GetInt("MATRIX_PARALLEL_THRESHOLD", cfg.MatrixParallelThreshold); err != nil {
		return err
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse float %q: %w", key, v, err)
	}
	return f, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: parse bool %q: %w", key, v, err)
	}
	return b, nil
}
