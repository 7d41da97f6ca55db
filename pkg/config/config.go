package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EstimatorModeSimulated = "simulated"
	EstimatorModeModel     = "model"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Advisor  AdvisorConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Operator OperatorConfig
	Feed     FeedConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port             string
	CORSAllowOrigins []string
	RateLimit        float64
}

type AdvisorConfig struct {
	EstimatorMode  string
	ModelPath      string
	TargetCu       float64
	DeadBand       float64
	MaxAdjustments int
	NoiseStdDev    float64
	Seed           int64
	ParametersFile string
	HistoryLimit   int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	PoolSize      int
	StateTTL      time.Duration
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type OperatorConfig struct {
	Username     string
	PasswordHash string
}

// Enabled reports whether an operator account is configured.
func (o OperatorConfig) Enabled() bool {
	return o.PasswordHash != ""
}

type FeedConfig struct {
	Enabled  bool
	Files    []string
	Interval time.Duration
	Advise   bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	p := &envParser{}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Smelter Advisor"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:             getEnv("PORT", "8080"),
			CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			RateLimit:        p.getFloat("RATE_LIMIT", 20),
		},
		Advisor: AdvisorConfig{
			EstimatorMode:  strings.ToLower(getEnv("ESTIMATOR_MODE", EstimatorModeSimulated)),
			ModelPath:      getEnv("MODEL_PATH", "LIN_model.json"),
			TargetCu:       p.getFloat("TARGET_CU", 62.5),
			DeadBand:       p.getFloat("DEAD_BAND", 0.5),
			MaxAdjustments: p.getInt("MAX_ADJUSTMENTS", 2),
			NoiseStdDev:    p.getFloat("SIMULATION_NOISE_STDDEV", 0.5),
			Seed:           int64(p.getInt("SIMULATION_SEED", 0)),
			ParametersFile: getEnv("PARAMETERS_FILE", ""),
			HistoryLimit:   p.getInt("HISTORY_LIMIT", 1000),
		},
		Database: DatabaseConfig{
			Enabled:  p.getBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "smelter_advisor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:       p.getBool("REDIS_ENABLED", false),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUsername: getEnv("REDIS_USERNAME", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       p.getInt("REDIS_DB", 0),
			PoolSize:      p.getInt("REDIS_POOL_SIZE", 10),
			StateTTL:      time.Duration(p.getInt("STATE_TTL_SECONDS", 86400)) * time.Second,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       time.Duration(p.getInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		},
		Operator: OperatorConfig{
			Username:     getEnv("OPERATOR_USERNAME", "operator"),
			PasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		},
		Feed: FeedConfig{
			Enabled:  p.getBool("FEED_ENABLED", false),
			Files:    getEnvList("FEED_FILES", []string{"data/data1.csv", "data/data2.csv", "data/data3.csv"}),
			Interval: time.Duration(p.getInt("FEED_INTERVAL_MS", 1000)) * time.Millisecond,
			Advise:   p.getBool("FEED_ADVISE", false),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Advisor.EstimatorMode {
	case EstimatorModeSimulated, EstimatorModeModel:
	default:
		return fmt.Errorf("invalid estimator mode %q: must be %s or %s",
			c.Advisor.EstimatorMode, EstimatorModeSimulated, EstimatorModeModel)
	}

	if c.Advisor.MaxAdjustments < 0 {
		return errors.New("max adjustments must not be negative")
	}

	if c.Advisor.DeadBand < 0 {
		return errors.New("dead band must not be negative")
	}

	if c.Advisor.NoiseStdDev < 0 {
		return errors.New("simulation noise must not be negative")
	}

	if c.Server.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}

	if c.Operator.Enabled() && c.JWT.SecretKey == "" {
		return errors.New("missing jwt secret")
	}

	if c.Database.Enabled && c.Database.Password == "" {
		return errors.New("missing database password")
	}

	if c.Redis.Enabled && c.Redis.PoolSize <= 0 {
		return errors.New("redis pool size must be positive")
	}

	if c.Feed.Enabled && len(c.Feed.Files) == 0 {
		return errors.New("missing feed files")
	}

	if c.Feed.Interval <= 0 {
		return errors.New("feed interval must be positive")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

// envParser reads typed values and keeps the first parse failure.
type envParser struct {
	err error
}

func (p *envParser) getInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		p.fail(key, err)
		return defaultVal
	}

	return n
}

func (p *envParser) getFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		p.fail(key, err)
		return defaultVal
	}

	return f
}

func (p *envParser) getBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		p.fail(key, err)
		return defaultVal
	}

	return b
}

func (p *envParser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
