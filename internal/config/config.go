package config

import (
	"fmt"
	"time"

	"millionaire_backend/internal/model"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Game      GameConfig      `mapstructure:"game"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// GameConfig holds the rules of a single run: the prize ladder, the
// fireproof milestones and the wall-clock limit. This is configuration
// data, the state machine never hardcodes any of it.
type GameConfig struct {
	TimeLimitMinutes int     `mapstructure:"time_limit_minutes"`
	Prizes           []int64 `mapstructure:"prizes"`
	FireproofLevels  []int   `mapstructure:"fireproof_levels"`
}

func (g GameConfig) TimeLimit() time.Duration {
	return time.Duration(g.TimeLimitMinutes) * time.Minute
}

func (g GameConfig) Validate() error {
	// 奖金阶梯必须与15个关卡一一对应，否则通关奖金会落空
	if len(g.Prizes) != model.LevelCount {
		return fmt.Errorf("game.prizes must list exactly %d amounts, got %d", model.LevelCount, len(g.Prizes))
	}
	for i := 1; i < len(g.Prizes); i++ {
		if g.Prizes[i] <= g.Prizes[i-1] {
			return fmt.Errorf("game.prizes must be strictly ascending (index %d)", i)
		}
	}
	for _, lvl := range g.FireproofLevels {
		if lvl < 0 || lvl >= len(g.Prizes) {
			return fmt.Errorf("game.fireproof_levels contains out-of-range level %d", lvl)
		}
	}
	if g.TimeLimitMinutes <= 0 {
		return fmt.Errorf("game.time_limit_minutes must be positive")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("MILLIONAIRE")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
