package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"spendly-backend/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	SMTP       SMTP       `yaml:"smtp"`
	JWT        JWT        `yaml:"jwt"`
	Log        Log        `yaml:"log"`
	Translator Translator `yaml:"translator"`
	Scheduler  Scheduler  `yaml:"scheduler"`
	// DefaultCategories is the seed table applied to every new home at
	// registration. Explicit configuration rather than a baked-in constant
	// list, so deployments can localize or extend the set.
	DefaultCategories []CategorySeed `yaml:"default_categories"`
}

// Server contains HTTP server settings
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Database contains PostgreSQL connection settings
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SMTP contains email service settings
type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// JWT contains token settings
type JWT struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// Log contains logging settings
type Log struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Translator contains settings for the category name translator
type Translator struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// Scheduler contains cron schedule settings
type Scheduler struct {
	SendLoanReminders string `yaml:"send_loan_reminders"`
}

// CategorySeed is one row of the default category table
type CategorySeed struct {
	NameTr string `yaml:"name_tr"`
	NameEn string `yaml:"name_en"`
	Kind   string `yaml:"kind"` // INCOME, EXPENSE or BOTH
	Icon   string `yaml:"icon"`
	Color  string `yaml:"color"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("TRANSLATOR_API_KEY"); val != "" {
		c.Translator.APIKey = val
	}
}

// Validate checks required settings and fills defaults
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 60 * 24 * 7
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduler.SendLoanReminders == "" {
		c.Scheduler.SendLoanReminders = "0 0 9 * * *" // Daily at 9 AM UTC
	}
	for i, seed := range c.DefaultCategories {
		if seed.NameTr == "" || seed.NameEn == "" {
			return fmt.Errorf("default category %d: both names are required", i)
		}
		switch domain.CategoryKind(seed.Kind) {
		case domain.CategoryKindIncome, domain.CategoryKindExpense, domain.CategoryKindBoth:
		default:
			return fmt.Errorf("default category %q: unknown kind %q", seed.NameTr, seed.Kind)
		}
	}
	return nil
}

// SeedCategories converts the configured defaults into category rows
func (c *Config) SeedCategories() []domain.Category {
	seed := make([]domain.Category, 0, len(c.DefaultCategories))
	for _, s := range c.DefaultCategories {
		seed = append(seed, domain.Category{
			NameTr:    s.NameTr,
			NameEn:    s.NameEn,
			Kind:      domain.CategoryKind(s.Kind),
			Icon:      s.Icon,
			Color:     s.Color,
			IsDefault: true,
		})
	}
	return seed
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
