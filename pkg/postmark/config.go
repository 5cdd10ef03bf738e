package postmark

import "time"

// Default connection settings.
const (
	DefaultBaseURL       = "https://api.postmarkapp.com"
	DefaultMessageStream = "outbound"
	DefaultTimeout       = 30 * time.Second
)

// Config holds Postmark API credentials and endpoints.
// Embed this in your app config for env parsing.
type Config struct {
	ServerToken   string        `env:"POSTMARK_SERVER_TOKEN" mapstructure:"server_token"`
	AccountToken  string        `env:"POSTMARK_ACCOUNT_TOKEN" mapstructure:"account_token"`
	BaseURL       string        `env:"POSTMARK_BASE_URL" envDefault:"https://api.postmarkapp.com" mapstructure:"base_url"`
	MessageStream string        `env:"POSTMARK_MESSAGE_STREAM" envDefault:"outbound" mapstructure:"message_stream"`
	Timeout       time.Duration `env:"POSTMARK_TIMEOUT" envDefault:"30s" mapstructure:"timeout"`
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MessageStream == "" {
		c.MessageStream = DefaultMessageStream
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
