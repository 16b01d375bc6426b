package configs

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type ENV struct {
	Port     string `envconfig:"APP_PORT" default:":8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"cherryshop"`
	DBPath     string `envconfig:"DB_PATH" default:"cherryshop.db"`

	JWTSecret string `envconfig:"JWT_SECRET"`
	JWTIssuer string `envconfig:"JWT_ISSUER" default:"cherryshop"`

	RedisAddr        string        `envconfig:"REDIS_ADDR"`
	LoginMaxAttempts int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"10"`
	LoginWindow      time.Duration `envconfig:"LOGIN_WINDOW" default:"1m"`

	SeedPassword string `envconfig:"SEED_PASSWORD"`
}

func LoadEnv() (ENV, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	var env ENV
	if err := envconfig.Process("", &env); err != nil {
		return ENV{}, err
	}
	return env, nil
}

// RequireSecret fails when no signing secret is configured. Commands that
// never issue tokens skip this check.
func (e ENV) RequireSecret() error {
	if e.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	return nil
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}
