package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds every process setting. It is loaded once at startup and passed
// to constructors; nothing reads the environment after Load returns.
type Config struct {
	AppName  string `envconfig:"APP_NAME" default:"Ganesh A.I."`
	Domain   string `envconfig:"DOMAIN" default:"http://localhost:8080"`
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Rewards  RewardsConfig
	Premium  PremiumConfig
	OpenAI   OpenAIConfig
	Telegram TelegramConfig

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	StatsInterval     time.Duration `envconfig:"STATS_INTERVAL" default:"5m"`
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	// Path of the embedded store, e.g. ganesh_ai.db or file::memory:?cache=shared.
	Path string `envconfig:"DB_PATH" default:"ganesh_ai.db"`
}

type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"change-me-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"change-me-refresh"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`
	Issuer        string        `envconfig:"JWT_ISSUER" default:"ganeshai"`
}

// AdminConfig is the bootstrap admin account seeded on first start.
type AdminConfig struct {
	Username string `envconfig:"ADMIN_USER" default:"Admin"`
	Password string `envconfig:"ADMIN_PASS" default:"admin123"`
}

// RewardsConfig carries the monetary rate constants. Decimal fields are parsed
// by envconfig via TextUnmarshaler, so rates never pass through binary floats.
type RewardsConfig struct {
	ChatPayRate   decimal.Decimal `envconfig:"CHAT_PAY_RATE" default:"0.05"`
	ReferralBonus decimal.Decimal `envconfig:"REFERRAL_BONUS" default:"10.0"`
	WelcomeBonus  decimal.Decimal `envconfig:"WELCOME_BONUS" default:"10.0"`
	VisitPayRate  decimal.Decimal `envconfig:"VISIT_PAY_RATE" default:"0.001"`
}

type PremiumConfig struct {
	Multiplier   decimal.Decimal `envconfig:"PREMIUM_MULTIPLIER" default:"2"`
	MonthlyPrice decimal.Decimal `envconfig:"PREMIUM_MONTHLY" default:"99.0"`
	YearlyPrice  decimal.Decimal `envconfig:"PREMIUM_YEARLY" default:"999.0"`
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"OPENAI_API_KEY" default:""`
	Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	BaseURL string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
}

type TelegramConfig struct {
	Token       string `envconfig:"TELEGRAM_TOKEN" default:""`
	BotUsername string `envconfig:"TELEGRAM_BOT_USERNAME" default:"GaneshAIBot"`
}

func (c *Config) Validate() error {
	if !c.Rewards.ChatPayRate.IsPositive() {
		return fmt.Errorf("config: CHAT_PAY_RATE must be > 0")
	}
	if c.Rewards.ReferralBonus.IsNegative() || c.Rewards.WelcomeBonus.IsNegative() || c.Rewards.VisitPayRate.IsNegative() {
		return fmt.Errorf("config: bonus rates must not be negative")
	}
	if !c.Premium.Multiplier.IsPositive() {
		return fmt.Errorf("config: PREMIUM_MULTIPLIER must be > 0")
	}
	return nil
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
