package config

import (
	"time"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Quota    QuotaConfig    `yaml:"quota"`
	Insight  InsightConfig  `yaml:"insight"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"mutaallim"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"24h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// TierQuota holds the weekly budget seeded for one subscription tier.
type TierQuota struct {
	WeeklyMessages int `yaml:"weekly_messages"`
	WeeklyTokens   int `yaml:"weekly_tokens"`
}

// QuotaConfig holds the default weekly budgets per tier.
type QuotaConfig struct {
	FreeWeeklyMessages int `yaml:"free_weekly_messages" env:"QUOTA_FREE_WEEKLY_MESSAGES" env-default:"50"`
	FreeWeeklyTokens   int `yaml:"free_weekly_tokens"   env:"QUOTA_FREE_WEEKLY_TOKENS"   env-default:"150000"`
	PlusWeeklyMessages int `yaml:"plus_weekly_messages" env:"QUOTA_PLUS_WEEKLY_MESSAGES" env-default:"300"`
	PlusWeeklyTokens   int `yaml:"plus_weekly_tokens"   env:"QUOTA_PLUS_WEEKLY_TOKENS"   env-default:"900000"`
	ProWeeklyMessages  int `yaml:"pro_weekly_messages"  env:"QUOTA_PRO_WEEKLY_MESSAGES"  env-default:"1500"`
	ProWeeklyTokens    int `yaml:"pro_weekly_tokens"    env:"QUOTA_PRO_WEEKLY_TOKENS"    env-default:"4500000"`
}

// ForTier returns the default weekly budget for a tier.
// Unknown tiers fall back to the free budget.
func (c QuotaConfig) ForTier(tier domain.Tier) TierQuota {
	switch tier {
	case domain.TierPlus:
		return TierQuota{WeeklyMessages: c.PlusWeeklyMessages, WeeklyTokens: c.PlusWeeklyTokens}
	case domain.TierPro:
		return TierQuota{WeeklyMessages: c.ProWeeklyMessages, WeeklyTokens: c.ProWeeklyTokens}
	default:
		return TierQuota{WeeklyMessages: c.FreeWeeklyMessages, WeeklyTokens: c.FreeWeeklyTokens}
	}
}

// InsightConfig holds fact-extraction and reconciliation parameters.
type InsightConfig struct {
	// MinObservations is the evidence floor: groups smaller than this
	// produce no fact (avoids overfitting to a single data point).
	MinObservations    int     `yaml:"min_observations"    env:"INSIGHT_MIN_OBSERVATIONS"    env-default:"3"`
	StruggleThreshold  float64 `yaml:"struggle_threshold"  env:"INSIGHT_STRUGGLE_THRESHOLD"  env-default:"0.5"`
	StrengthThreshold  float64 `yaml:"strength_threshold"  env:"INSIGHT_STRENGTH_THRESHOLD"  env-default:"0.8"`
	MaxExamples        int     `yaml:"max_examples"        env:"INSIGHT_MAX_EXAMPLES"        env-default:"3"`
	MaxPromptFacts     int     `yaml:"max_prompt_facts"    env:"INSIGHT_MAX_PROMPT_FACTS"    env-default:"5"`
	RecentWindow       int     `yaml:"recent_window"       env:"INSIGHT_RECENT_WINDOW"       env-default:"200"`
	// StrengthDecayEnabled gates the symmetric deactivation rule for
	// strength facts. Off by default: a single weak lesson never retires
	// a demonstrated strength.
	StrengthDecayEnabled bool `yaml:"strength_decay_enabled" env:"INSIGHT_STRENGTH_DECAY_ENABLED" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
