package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	LegacyDatabaseURL string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	AllowRegistration bool
	LoginRateLimit    string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	CORSAllowedOrigins []string

	// AllowanceCron is a robfig/cron spec; empty disables the in-process schedule.
	AllowanceCron string

	LogLevel       string
	LogFormat      string
	MigrationsPath string
}

// LoadConfig loads configuration from environment variables and .env files if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env files, ignore errors if they don't exist
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("LEGACY_DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "familienkasse")
	v.SetDefault("ALLOW_REGISTRATION", "true")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("ALLOWANCE_CRON", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MIGRATIONS_PATH", "")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.LegacyDatabaseURL = v.GetString("LEGACY_DATABASE_URL")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "familienkasse"
	}

	// Registration stays open unless explicitly switched off.
	cfg.AllowRegistration = strings.ToLower(strings.TrimSpace(v.GetString("ALLOW_REGISTRATION"))) != "false"

	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "5-M"
	}

	cfg.GoogleClientID = v.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = v.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = v.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.AllowanceCron = strings.TrimSpace(v.GetString("ALLOWANCE_CRON"))
	cfg.LogLevel = v.GetString("LOG_LEVEL")
	cfg.LogFormat = v.GetString("LOG_FORMAT")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
