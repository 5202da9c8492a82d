package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Store    *StoreConfig    `mapstructure:"store"`
	Mirror   *MirrorConfig   `mapstructure:"mirror"`
	Reward   *RewardConfig   `mapstructure:"reward"`
	Supply   *SupplyConfig   `mapstructure:"supply"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string           `mapstructure:"environment"`
	Port               string           `mapstructure:"port"`
	BaseURL            string           `mapstructure:"base_url"`
	AllowedCORSDomains []string         `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string           `mapstructure:"jwt_signing_key"`
	RateLimit          *RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN renders the config in the key=value form accepted by the pgx driver.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverFile     = "file"
)

type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	FilePath string `mapstructure:"file_path"`
	Compress bool   `mapstructure:"compress"`
}

type MirrorConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
}

type RewardConfig struct {
	Attribute  string  `mapstructure:"attribute"`
	Multiplier float64 `mapstructure:"multiplier"`
}

type SupplyConfig struct {
	Secret string `mapstructure:"secret"`
}

// Load reads the config file at path. Every key can be overridden by an
// OMNIA_ prefixed environment variable, e.g. OMNIA_API_PORT.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("omnia")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{v: v}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "3001")
	v.SetDefault("api.base_url", "localhost:3001")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.rate_limit.rps", 10)
	v.SetDefault("api.rate_limit.burst", 20)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("store.driver", StoreDriverPostgres)
	v.SetDefault("store.file_path", "./data/states")
	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.base_url", "https://testnet.mirrornode.hedera.com")
	v.SetDefault("mirror.timeout", 10*time.Second)
	v.SetDefault("mirror.cache_size", 512)
	v.SetDefault("reward.attribute", "carbon_sequestration")
	v.SetDefault("reward.multiplier", 10)
}

// Watch calls onChange with the reloaded reward section every time the
// config file is written. Only the reward policy is reloadable at runtime.
func (c *AppConfig) Watch(onChange func(RewardConfig)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) {
			return
		}
		var reward RewardConfig
		if err := c.v.UnmarshalKey("reward", &reward); err != nil {
			return
		}
		onChange(reward)
	})
	c.v.WatchConfig()
}
