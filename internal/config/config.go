package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq" yaml:"rabbitmq"`
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	GRPC     GRPCConfig     `mapstructure:"grpc" yaml:"grpc"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	App      AppConfig      `mapstructure:"app" yaml:"app"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Name     string `mapstructure:"name" yaml:"name"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
}

type RabbitMQConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Queue    string `mapstructure:"queue" yaml:"queue"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

type GRPCConfig struct {
	Port        string `mapstructure:"port" yaml:"port"`
	GatewayPort string `mapstructure:"gateway_port" yaml:"gateway_port"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl" yaml:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl" yaml:"refresh_ttl"`
}

type AppConfig struct {
	// часовой пояс для календарных вычислений (сегодня, дней до срока)
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// переменные окружения, которые читались и раньше
var envBindings = map[string]string{
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"database.sslmode":  "DB_SSLMODE",
	"rabbitmq.enabled":  "RABBITMQ_ENABLED",
	"rabbitmq.host":     "RABBITMQ_HOST",
	"rabbitmq.port":     "RABBITMQ_PORT",
	"rabbitmq.user":     "RABBITMQ_USER",
	"rabbitmq.password": "RABBITMQ_PASSWORD",
	"rabbitmq.queue":    "RABBITMQ_QUEUE",
	"http.port":         "HTTP_PORT",
	"grpc.port":         "GRPC_PORT",
	"grpc.gateway_port": "GATEWAY_PORT",
	"auth.jwt_secret":   "JWT_SECRET_KEY",
	"auth.access_ttl":   "JWT_ACCESS_TTL",
	"auth.refresh_ttl":  "JWT_REFRESH_TTL",
	"app.timezone":      "APP_TIMEZONE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "taskmanager")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("rabbitmq.enabled", true)
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", "5672")
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.queue", "task_audit_logs")

	v.SetDefault("http.port", "8000")
	v.SetDefault("grpc.port", "9090")
	v.SetDefault("grpc.gateway_port", "8080")

	v.SetDefault("auth.jwt_secret", "your-secret-key-change-in-production")
	v.SetDefault("auth.access_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("app.timezone", "UTC")
}

// Load собирает конфигурацию: значения по умолчанию, затем yaml-файл
// (если path не пустой), затем переменные окружения.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Database.Host == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("database host and name are required"))
	}
	if c.HTTP.Port == "" || c.GRPC.Port == "" || c.GRPC.GatewayPort == "" {
		errs = append(errs, errors.New("http, grpc and gateway ports are required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Queue == "" {
		errs = append(errs, errors.New("rabbitmq queue is required"))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err))
	}
	return errors.Join(errs...)
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode)
}

func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RabbitMQ.User,
		c.RabbitMQ.Password,
		c.RabbitMQ.Host,
		c.RabbitMQ.Port)
}

// Location - уже проверен в Validate
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Masked возвращает YAML с замаскированными секретами
func (c *Config) Masked() ([]byte, error) {
	masked := *c
	masked.Database.Password = mask(c.Database.Password)
	masked.RabbitMQ.Password = mask(c.RabbitMQ.Password)
	masked.Auth.JWTSecret = mask(c.Auth.JWTSecret)
	return yaml.Marshal(&masked)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return strings.Repeat("*", 8)
}
