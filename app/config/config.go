package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"
)

// Config holds the application configuration, populated from environment variables
type Config struct {
	App    AppConfig
	Server ServerConfig
	Store  StoreConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, production
	Port        string
	LogLevel    string
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver          string // badger, mongo
	BadgerPath      string
	BadgerInMemory  bool
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "blogapi"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:          getEnv("STORE_DRIVER", DriverBadger),
			BadgerPath:      getEnv("BADGER_PATH", "data/badger"),
			BadgerInMemory:  getEnvBool("BADGER_IN_MEMORY", false),
			MongoURI:        getEnv("MONGO_URI", ""),
			MongoDatabase:   getEnv("MONGO_DATABASE", "blog"),
			MongoCollection: getEnv("MONGO_COLLECTION", "posts"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.Server),
		validation.Field(&c.Store),
	)
}

func (a AppConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Environment, validation.Required, validation.In("development", "test", "production")),
		validation.Field(&a.Port, validation.Required, is.Port),
		validation.Field(&a.LogLevel, validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&s.WriteTimeout, validation.Min(time.Duration(0))),
		validation.Field(&s.IdleTimeout, validation.Min(time.Duration(0))),
		validation.Field(&s.ShutdownTimeout, validation.Required),
	)
}

func (s StoreConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(DriverBadger, DriverMongo)),
		validation.Field(&s.BadgerPath,
			validation.When(s.Driver == DriverBadger && !s.BadgerInMemory, validation.Required.Error("BADGER_PATH is required unless BADGER_IN_MEMORY is set")),
		),
		validation.Field(&s.MongoURI,
			validation.When(s.Driver == DriverMongo, validation.Required.Error("MONGO_URI is required for the mongo driver")),
		),
		validation.Field(&s.MongoDatabase, validation.When(s.Driver == DriverMongo, validation.Required)),
		validation.Field(&s.MongoCollection, validation.When(s.Driver == DriverMongo, validation.Required)),
	)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.App.Port
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("5s") or plain seconds ("5")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
