package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	HTTP      HTTP
	Admin     Admin
	SMTP      SMTP
	Epic      Epic
	Storage   Storage
	Redis     Redis
	Postgres  Postgres
	S3        S3
	Firestore Firestore
	Scheduler Scheduler
	Bot       Bot
}

type App struct {
	Name        string `env:"APP_NAME" envDefault:"epic-notifier"`
	Version     string `env:"APP_VERSION" envDefault:"dev"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ProbeAddr   string `env:"PROBE_ADDR" envDefault:":8081"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

type HTTP struct {
	ListenAddr      string        `env:"HTTP_ADDR" envDefault:":5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	LogFieldMaxLen  int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"2048"`
	PublicRateLimit string        `env:"HTTP_PUBLIC_RATE_LIMIT" envDefault:"30-M"`
}

type Admin struct {
	Username      string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password      string `env:"ADMIN_PASSWORD" envDefault:"admin123" json:"-"`
	SessionSecret string `env:"SECRET_KEY" json:"-"`
	SecureCookie  bool   `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
}

type Bot struct {
	Token   string `env:"BOT_TOKEN" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Firestore.CredentialsJSON = correctNewlines(config.Firestore.CredentialsJSON)

	if err := config.Storage.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Storage.Validate: %w", err)
	}

	if err := config.Scheduler.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Scheduler.Validate: %w", err)
	}

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`\n`, "\n").Replace(s)
}
