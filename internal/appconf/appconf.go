// Package appconf reads the server configuration from flags, the environment
// and an optional .env file.
package appconf

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"matatumonitor/internal/logging"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	}
	return "development"
}

// EnvFlagToEnvironment maps the -env flag to an Environment. Unknown values
// are treated as development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	}
	return Development
}

// Config holds all the configuration settings for the server.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int // requests per second per API key
	LogLevel  slog.Level

	// SeedSampleData puts the demo reports in the feed at startup.
	SeedSampleData bool

	// GTFSSource is a local path or http(s) URL of a static GTFS zip. When
	// empty the sample Nairobi routes are used.
	GTFSSource      string
	GTFSDefaultFare float64

	// NATSURL enables publishing events to NATS when set.
	NATSURL           string
	NATSSubjectPrefix string

	AllowedOrigins []string
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load parses args (without the program name). Flag defaults come from the
// environment, after the given .env files (or ./.env) have been loaded into
// it. Missing .env files are not an error.
func Load(args []string, envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	var (
		cfg            Config
		env            string
		apiKeys        string
		logLevel       string
		allowedOrigins string
	)

	fls := flag.NewFlagSet("matatu-monitor", flag.ContinueOnError)

	defaultPort, err := envInt("PORT", 4000)
	if err != nil {
		return Config{}, err
	}
	defaultRateLimit, err := envInt("RATE_LIMIT", 100)
	if err != nil {
		return Config{}, err
	}
	defaultSeed, err := envBool("SEED_SAMPLE_DATA", true)
	if err != nil {
		return Config{}, err
	}
	defaultFare, err := envFloat("GTFS_DEFAULT_FARE", 50)
	if err != nil {
		return Config{}, err
	}

	fls.IntVar(&cfg.Port, "port", defaultPort, "API server port")
	fls.StringVar(&env, "env", envString("ENV", "development"), "Environment (development|test|production)")
	fls.StringVar(&apiKeys, "api-keys", envString("API_KEYS", ""), "Comma separated API keys; empty disables key checks")
	fls.IntVar(&cfg.RateLimit, "rate-limit", defaultRateLimit, "Requests per second per API key")
	fls.StringVar(&logLevel, "log-level", envString("LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fls.BoolVar(&cfg.SeedSampleData, "seed", defaultSeed, "Seed the feed with sample reports")
	fls.StringVar(&cfg.GTFSSource, "gtfs-source", envString("GTFS_SOURCE", ""), "Path or URL of a static GTFS zip for the route catalog")
	fls.Float64Var(&cfg.GTFSDefaultFare, "gtfs-default-fare", defaultFare, "Standard fare (KSH) for routes loaded from GTFS")
	fls.StringVar(&cfg.NATSURL, "nats-url", envString("NATS_URL", ""), "NATS server URL for event publishing")
	fls.StringVar(&cfg.NATSSubjectPrefix, "nats-subject-prefix", envString("NATS_SUBJECT_PREFIX", "matatu"), "Subject prefix for published events")
	fls.StringVar(&allowedOrigins, "allowed-origins", envString("ALLOWED_ORIGINS", "*"), "Comma separated CORS origins")

	if err := fls.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Env = EnvFlagToEnvironment(env)
	cfg.ApiKeys = splitList(apiKeys)
	cfg.AllowedOrigins = splitList(allowedOrigins)
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that flags cannot constrain on their own.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit %d", c.RateLimit)
	}
	if c.GTFSDefaultFare <= 0 {
		return fmt.Errorf("gtfs default fare must be positive, got %v", c.GTFSDefaultFare)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
