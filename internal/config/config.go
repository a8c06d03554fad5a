package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Content   ContentConfig   `yaml:"content"`
	Feed      FeedConfig      `yaml:"feed"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token validation settings. Tokens are issued by the
// account service; this application only validates them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"whisperboard"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// ContentConfig holds validation limits for user-submitted text.
type ContentConfig struct {
	MaxConfessionLen int `yaml:"max_confession_len" env:"CONTENT_MAX_CONFESSION_LEN" env-default:"1000"`
	MinCommentLen    int `yaml:"min_comment_len"    env:"CONTENT_MIN_COMMENT_LEN"    env-default:"1"`
	MaxCommentLen    int `yaml:"max_comment_len"    env:"CONTENT_MAX_COMMENT_LEN"    env-default:"2000"`
	MaxReasonLen     int `yaml:"max_reason_len"     env:"CONTENT_MAX_REASON_LEN"     env-default:"500"`
}

// FeedConfig holds listing and trending-window settings.
//
// TrendingWindowSize bounds the candidate set for trending ranking: only
// the most recent N visible confessions compete. Ranking is exact within
// the window only, so size it generously relative to page sizes.
type FeedConfig struct {
	DefaultPageSize    int           `yaml:"default_page_size"    env:"FEED_DEFAULT_PAGE_SIZE"    env-default:"20"`
	MaxPageSize        int           `yaml:"max_page_size"        env:"FEED_MAX_PAGE_SIZE"        env-default:"100"`
	TrendingWindowSize int           `yaml:"trending_window_size" env:"FEED_TRENDING_WINDOW_SIZE" env-default:"100"`
	TrendingWindowTTL  time.Duration `yaml:"trending_window_ttl"  env:"FEED_TRENDING_WINDOW_TTL"  env-default:"30s"`
	DetailCommentLimit int           `yaml:"detail_comment_limit" env:"FEED_DETAIL_COMMENT_LIMIT" env-default:"50"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP rate limit settings for mutating routes.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATELIMIT_REQUESTS_PER_MINUTE" env-default:"60"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATELIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}
