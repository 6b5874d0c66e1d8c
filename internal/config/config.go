package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// Per-client-IP limit applied to /signup and /login
	AuthRateLimit float64 `mapstructure:"auth_rate_limit"`
	AuthRateBurst int     `mapstructure:"auth_rate_burst"`
	// Origins allowed by CORS; "*" allows any
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "mongo" or "memory"
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	// Base of the public photo URLs, e.g. https://photos.example.com
	PublicBaseURL string `mapstructure:"public_base_url"`
	// Folder progress photos are uploaded into
	Folder string `mapstructure:"folder"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RedisConfig configures the logout denylist. An empty address disables it.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("config: jwt.secret is required")

// LoadConfig reads configuration from file or environment variables.
// A .env file in path, when present, is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(strings.TrimSuffix(path, "/") + "/.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, err
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Use replacer for nested keys e.g., server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	// A missing config file is fine; defaults and env vars still apply
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.JWT.Secret == "" {
		return config, ErrMissingJWTSecret
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.auth_rate_limit", 1.0)
	v.SetDefault("server.auth_rate_burst", 5)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "wellness")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.folder", "progress_photos")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "168h") // 7 days

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
