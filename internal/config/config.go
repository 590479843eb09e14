package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

const (
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
	SourceStatic   = "static"

	ChannelTable    = "table"
	ChannelDeepLink = "deeplink"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Order     OrderConfig     `mapstructure:"order"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	DeepLink  DeepLinkConfig  `mapstructure:"deeplink"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type CatalogConfig struct {
	Source         string   `mapstructure:"source"`
	Categories     []string `mapstructure:"categories"`
	FeaturedLimit  int      `mapstructure:"featured_limit"`
	Locale         string   `mapstructure:"locale"`
	CurrencySymbol string   `mapstructure:"currency_symbol"`
}

type OrderConfig struct {
	Channel string `mapstructure:"channel"`
}

type RemoteConfig struct {
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Store  string        `mapstructure:"store"`
}

type DeepLinkConfig struct {
	Base               string `mapstructure:"base"`
	MaxURLLength       int    `mapstructure:"max_url_length"`
	CustomBuildMessage string `mapstructure:"custom_build_message"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("catalog.source", SourceRemote)
	v.SetDefault("catalog.categories", []string{"keycaps", "keyboards", "switches"})
	v.SetDefault("catalog.featured_limit", 3)
	v.SetDefault("catalog.locale", "id-ID")
	v.SetDefault("catalog.currency_symbol", "Rp")

	v.SetDefault("order.channel", ChannelTable)

	v.SetDefault("remote.url", "")
	v.SetDefault("remote.key", "")
	v.SetDefault("remote.timeout", 8*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.timeout", 3*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.store", StoreMemory)

	v.SetDefault("deeplink.base", "https://wa.me/6281234567890")
	v.SetDefault("deeplink.max_url_length", 2000)
	v.SetDefault("deeplink.custom_build_message", "Hello! I would like to request a custom keyboard build.")

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("log.level", "info")
}

// Load reads configuration from defaults, the optional YAML file at path and
// STOREFRONT_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every selected backend has what it needs.
func (c *Config) Validate() error {
	var errs []error

	switch c.Catalog.Source {
	case SourceRemote, SourcePostgres, SourceStatic:
	default:
		errs = append(errs, fmt.Errorf("catalog.source: unknown source %q", c.Catalog.Source))
	}
	switch c.Order.Channel {
	case ChannelTable, ChannelDeepLink:
	default:
		errs = append(errs, fmt.Errorf("order.channel: unknown channel %q", c.Order.Channel))
	}
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("session.store: unknown store %q", c.Session.Store))
	}

	if c.usesRemote() && (c.Remote.URL == "" || c.Remote.Key == "") {
		errs = append(errs, errors.New("remote.url and remote.key are required for the remote table"))
	}
	if c.usesPostgres() && c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required for the postgres source"))
	}
	if c.Session.Store == StoreRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required for the redis session store"))
	}
	if c.Order.Channel == ChannelDeepLink && c.DeepLink.Base == "" {
		errs = append(errs, errors.New("deeplink.base is required for the deeplink channel"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) usesRemote() bool {
	if c.Catalog.Source == SourceRemote {
		return true
	}
	return c.Order.Channel == ChannelTable && c.Catalog.Source == SourceStatic
}

func (c *Config) usesPostgres() bool {
	return c.Catalog.Source == SourcePostgres
}
