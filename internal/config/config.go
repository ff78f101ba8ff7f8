package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/gema-css-lab/pkg/ai"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	LogLevel            string
	CORSAllowOrigins    string
	DatabaseDriver      string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	NATSSubject         string
	JWTSecret           string
	ProgressCacheTTL    time.Duration
	StrictProbes        bool
	AIProvider          string
	AIModel             string
	AIAPIKey            string
	AssistantRateLimit  int
	AssistantRateWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GEMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GEMA CSS Lab")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("nats.subject", "css_lab.evaluations")
	v.SetDefault("progress.cache_ttl", "5m")
	v.SetDefault("evaluation.strict_probes", false)
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("assistant.rate_limit", 10)
	v.SetDefault("assistant.rate_window", "1m")

	ttl, err := parseDuration(v.GetString("progress.cache_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid progress cache ttl: %w", err)
	}

	window, err := parseDuration(v.GetString("assistant.rate_window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid assistant rate window: %w", err)
	}

	apiKey := v.GetString("ai.api_key")
	if apiKey == "" {
		apiKey = v.GetString("openai_api_key")
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		LogLevel:            strings.ToLower(v.GetString("log.level")),
		CORSAllowOrigins:    v.GetString("cors.allow_origins"),
		DatabaseDriver:      strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		NATSSubject:         v.GetString("nats.subject"),
		JWTSecret:           v.GetString("jwt.secret"),
		ProgressCacheTTL:    ttl,
		StrictProbes:        v.GetBool("evaluation.strict_probes"),
		AIProvider:          strings.ToLower(v.GetString("ai.provider")),
		AIModel:             v.GetString("ai.model"),
		AIAPIKey:            apiKey,
		AssistantRateLimit:  v.GetInt("assistant.rate_limit"),
		AssistantRateWindow: window,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if _, err := ai.ParseProvider(cfg.AIProvider); err != nil {
		return Config{}, fmt.Errorf("%w, expected one of %s", err, supportedProviders())
	}

	if cfg.AssistantRateLimit <= 0 {
		cfg.AssistantRateLimit = 10
	}

	return cfg, nil
}

func supportedProviders() string {
	names := make([]string, 0, len(ai.Providers()))
	for _, provider := range ai.Providers() {
		names = append(names, string(provider))
	}
	return strings.Join(names, ", ")
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
