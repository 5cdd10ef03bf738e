package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/postmarkit/pkg/logger"
	"github.com/dmitrymomot/postmarkit/pkg/mailer/resend"
	"github.com/dmitrymomot/postmarkit/pkg/postmark"
	"github.com/dmitrymomot/postmarkit/pkg/suppression"
)

// EnvPrefix prefixes every environment variable, e.g.
// POSTMARKIT_POSTMARK_SERVER_TOKEN for postmark.server_token.
const EnvPrefix = "POSTMARKIT"

// Config holds the settings of the postmarkit command.
type Config struct {
	Postmark postmark.Config     `mapstructure:"postmark"`
	Resend   resend.Config       `mapstructure:"resend"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Cache    CacheConfig         `mapstructure:"cache"`
	Seed     SeedConfig          `mapstructure:"seed"`
	Health   HealthConfig        `mapstructure:"health"`
	Log      LogConfig           `mapstructure:"log"`
	Sentry   logger.SentryConfig `mapstructure:"sentry"`
}

// RedisConfig selects the shared list cache. An empty URL selects the
// in-process cache.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// CacheConfig holds list cache settings.
type CacheConfig struct {
	TTL    time.Duration `mapstructure:"ttl"` // 0 keeps entries until reseeded
	Prefix string        `mapstructure:"prefix"`
}

// SeedConfig holds the suppression reseed schedule.
type SeedConfig struct {
	Schedule string        `mapstructure:"schedule"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// HealthConfig holds the health endpoint of the serve command.
type HealthConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the endpoint
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads postmarkit.yaml (optional) from the working directory,
// /etc/postmarkit or the file named by path, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("postmarkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/postmarkit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("postmark.server_token", "")
	v.SetDefault("postmark.account_token", "")
	v.SetDefault("postmark.base_url", postmark.DefaultBaseURL)
	v.SetDefault("postmark.message_stream", postmark.DefaultMessageStream)
	v.SetDefault("postmark.timeout", postmark.DefaultTimeout)

	v.SetDefault("resend.api_key", "")

	v.SetDefault("redis.url", "")

	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("cache.prefix", "postmarkit")

	v.SetDefault("seed.schedule", suppression.DefaultSeedSchedule)
	v.SetDefault("seed.timeout", 5*time.Minute)

	v.SetDefault("health.addr", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("sentry.min_level", "warn")
}
