package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAdminWallet is the wallet address of the platform admin seeded by
// the admin-user migration; the verification lookup targets it unless
// overridden.
const DefaultAdminWallet = "ARytv9UPs8ajtsHboVgtVJDwz1u7VrHTfDj8qERFrcJE"

type Config struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"dbname"`
	SSLMode     string `yaml:"sslmode"`
	File        string `yaml:"file"`
	AdminWallet string `yaml:"admin_wallet"`
	JSON        bool   `yaml:"json"`
}

func Default() *Config {
	return &Config{
		Host:        "localhost",
		Port:        "5432",
		User:        "postgres",
		DBName:      "prediction_market",
		SSLMode:     "disable",
		File:        "migrations/012_add_admin_user.sql",
		AdminWallet: DefaultAdminWallet,
	}
}

func LoadYAML(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MergeEnv overlays environment variables on cfg. A .env file in the working
// directory is loaded first if present, matching how the backend itself reads
// its settings.
func MergeEnv(cfg *Config) *Config {
	_ = godotenv.Load()
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.SSLMode = v
	}
	if v := os.Getenv("MIGRATION_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("ADMIN_WALLET"); v != "" {
		cfg.AdminWallet = v
	}
	return cfg
}

// DSN renders the keyword/value conninfo string understood by lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
