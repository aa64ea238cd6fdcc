package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Deck     DeckConfig
	Chat     ChatConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret     string
	ExpiryDays int
}

type DeckConfig struct {
	// Size is the number of books loaded into one deck session.
	Size int
	// AnimationDuration gates the Animating state: how long a card stays
	// in flight before the cursor advances.
	AnimationDuration time.Duration
	// DragThreshold is the drag distance (in client units) past which a
	// released drag counts as a swipe.
	DragThreshold float64
	// SessionTTL is how long an untouched deck session is kept before
	// the manager reaps it.
	SessionTTL time.Duration
}

type ChatConfig struct {
	// Channel is the redis pub/sub channel messages are broadcast on.
	Channel string
	// PollInterval drives the fallback polling loop used while the
	// realtime subscription is not confirmed.
	PollInterval time.Duration
}

type LoggingConfig struct {
	Mode string
}

type CORSConfig struct {
	AllowedOrigin string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 60)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	viper.SetDefault("JWT_EXPIRY_DAYS", 7)
	viper.SetDefault("DECK_SIZE", 50)
	viper.SetDefault("DECK_ANIMATION_MS", 600)
	viper.SetDefault("DECK_DRAG_THRESHOLD", 120.0)
	viper.SetDefault("DECK_SESSION_TTL_MIN", 60)
	viper.SetDefault("CHAT_CHANNEL", "chat:messages")
	viper.SetDefault("CHAT_POLL_INTERVAL_MS", 3000)
	viper.SetDefault("LOG_MODE", "dev")

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSL_MODE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME_MIN")) * time.Minute,
		},
		Redis: RedisConfig{
			Host:         viper.GetString("REDIS_HOST"),
			Port:         viper.GetInt("REDIS_PORT"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("JWT_SECRET"),
			ExpiryDays: viper.GetInt("JWT_EXPIRY_DAYS"),
		},
		Deck: DeckConfig{
			Size:              viper.GetInt("DECK_SIZE"),
			AnimationDuration: time.Duration(viper.GetInt("DECK_ANIMATION_MS")) * time.Millisecond,
			DragThreshold:     viper.GetFloat64("DECK_DRAG_THRESHOLD"),
			SessionTTL:        time.Duration(viper.GetInt("DECK_SESSION_TTL_MIN")) * time.Minute,
		},
		Chat: ChatConfig{
			Channel:      viper.GetString("CHAT_CHANNEL"),
			PollInterval: time.Duration(viper.GetInt("CHAT_POLL_INTERVAL_MS")) * time.Millisecond,
		},
		Logging: LoggingConfig{
			Mode: viper.GetString("LOG_MODE"),
		},
		CORS: CORSConfig{
			AllowedOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.Deck.Size <= 0 {
		return fmt.Errorf("deck size must be positive")
	}
	if c.Deck.AnimationDuration <= 0 {
		return fmt.Errorf("deck animation duration must be positive")
	}
	if c.Deck.SessionTTL <= 0 {
		return fmt.Errorf("deck session TTL must be positive")
	}
	if c.Chat.PollInterval <= 0 {
		return fmt.Errorf("chat poll interval must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
