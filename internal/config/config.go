package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production         bool          `env:"PRODUCTION" envDefault:"false"`
	Port               string        `env:"PORT" envDefault:"80"`
	PostgresUrl        string        `env:"POSTGRES_URL,required"`
	RedisUrl           string        `env:"REDIS_URL" envDefault:"redis:6379"`
	Secret             string        `env:"SECRET,required"`
	TokenEncryptionKey string        `env:"TOKEN_ENCRYPTION_KEY,required"`
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID" envDefault:""`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET" envDefault:""`
	GoogleRedirectURL  string        `env:"GOOGLE_REDIRECT_URL" envDefault:""`
	SyncTimeout        time.Duration `env:"SYNC_TIMEOUT" envDefault:"30s"`
	ReminderWindow     time.Duration `env:"REMINDER_WINDOW" envDefault:"30m"`
	NotificationTTL    time.Duration `env:"NOTIFICATION_DEDUPE_TTL" envDefault:"24h"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func Secret() string {
	return conf.Secret
}

func TokenEncryptionKey() string {
	return conf.TokenEncryptionKey
}

func GoogleClientID() string {
	return conf.GoogleClientID
}

func GoogleClientSecret() string {
	return conf.GoogleClientSecret
}

func GoogleRedirectURL() string {
	return conf.GoogleRedirectURL
}

func SyncTimeout() time.Duration {
	return conf.SyncTimeout
}

func ReminderWindow() time.Duration {
	return conf.ReminderWindow
}

func NotificationTTL() time.Duration {
	return conf.NotificationTTL
}
