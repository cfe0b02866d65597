package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Category describes one bucket of the afluencia classification scale.
// Buckets are matched bottom-up: the first one whose UpperBound exceeds the
// score wins; the last bucket is open-ended and carries no upper_bound.
type Category struct {
	UpperBound     float64 `yaml:"upper_bound"`
	Label          string  `yaml:"label"`
	Emoji          string  `yaml:"emoji"`
	Recommendation string  `yaml:"recommendation"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Model struct {
		Type         string        `yaml:"type"` // patterns or http
		Name         string        `yaml:"name"`
		ServiceURL   string        `yaml:"service_url"`
		Timeout      time.Duration `yaml:"timeout"`
		RetryMax     int           `yaml:"retry_max"`
		PatternsPath string        `yaml:"patterns_path"`
	} `yaml:"model"`
	Categories []Category `yaml:"categories"`
	Cache      struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		MaxSize int           `yaml:"max_size"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// PORT follows the PaaS convention of the deployment target.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = p
	}
	if v := os.Getenv("MODEL_TYPE"); v != "" {
		c.Model.Type = v
	}
	if v := os.Getenv("MODEL_SERVICE_URL"); v != "" {
		c.Model.ServiceURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Model.Type == "" {
		c.Model.Type = "patterns"
	}
	if c.Model.Name == "" {
		c.Model.Name = "RandomForest - Turismo Ecuador v1.0"
	}
	if c.Model.Timeout == 0 {
		c.Model.Timeout = 3 * time.Second
	}
	if c.Model.RetryMax == 0 {
		c.Model.RetryMax = 3
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = 1000
	}
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
}

// DefaultCategories returns the built-in afluencia classification scale.
func DefaultCategories() []Category {
	return []Category{
		{UpperBound: 15, Label: "BAJA", Emoji: "❄️", Recommendation: "Día tranquilo, menos turismo"},
		{UpperBound: 25, Label: "MEDIA", Emoji: "🔥", Recommendation: "Día moderado para turismo"},
		{UpperBound: 35, Label: "ALTA", Emoji: "🔥🔥", Recommendation: "Muy buen día para actividades turísticas"},
		{Label: "MUY ALTA", Emoji: "🔥🔥🔥", Recommendation: "Excelente día para turismo - alta demanda"},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Model.Type != "patterns" && c.Model.Type != "http" {
		return fmt.Errorf("model.type must be 'patterns' or 'http', got '%s'", c.Model.Type)
	}
	if c.Model.Type == "http" && c.Model.ServiceURL == "" {
		return fmt.Errorf("model.service_url is required when model.type is 'http'")
	}
	if len(c.Categories) < 2 {
		return fmt.Errorf("categories: at least two buckets are required")
	}
	last := len(c.Categories) - 1
	for i, cat := range c.Categories {
		if cat.Label == "" {
			return fmt.Errorf("categories[%d]: label is required", i)
		}
		if i == last {
			if cat.UpperBound != 0 {
				return fmt.Errorf("categories[%d]: top bucket must be open-ended (no upper_bound)", i)
			}
			continue
		}
		if cat.UpperBound <= 0 {
			return fmt.Errorf("categories[%d]: upper_bound must be positive", i)
		}
		if i > 0 && cat.UpperBound <= c.Categories[i-1].UpperBound {
			return fmt.Errorf("categories[%d]: upper_bound must be strictly increasing", i)
		}
	}
	return nil
}
