package models

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	OTP       OTPConfig
	SMS       SMSConfig
	RateLimit RateLimitConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name             string
	Environment      string
	Debug            bool
	Version          string
	SkipVerification bool // auto-verify new signups (test/dev only)
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// OTPConfig contains OTP policy knobs
type OTPConfig struct {
	MaxAttempts   int
	ExpiryMinutes int
	CodeLength    int
	SessionDays   int // refresh-token session lifetime in days
}

// SMSConfig contains SMS gateway configuration
type SMSConfig struct {
	ProviderURL string
	APIKey      string
	SenderID    string
	UseMock     bool // log codes instead of calling the provider (test/dev only)
}

// RateLimitConfig contains rate limiter configuration
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Period  int // in seconds
}

// NewRelicConfig contains New Relic configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
