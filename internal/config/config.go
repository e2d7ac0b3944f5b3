package config

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultGraphURL = "https://graph.facebook.com"

type Config struct {
	AppPort string

	FacebookGraphURL string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() Config {

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: os.Getenv("APP_PORT"),

		FacebookGraphURL: os.Getenv("FACEBOOK_GRAPH_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	if cfg.FacebookGraphURL == "" {
		cfg.FacebookGraphURL = defaultGraphURL
	}

	return cfg

}
