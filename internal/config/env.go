package config

import (
	"log"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Env holds process configuration. Populated once from environment variables.
type Env struct {
	AppAddr     string   `envconfig:"APP_ADDR" default:":8080"`
	GinMode     string   `envconfig:"GIN_MODE"`
	DBUser      string   `envconfig:"DB_USER" default:"root"`
	DBPassword  string   `envconfig:"DB_PASSWORD"`
	DBHost      string   `envconfig:"DB_HOST" default:"127.0.0.1:3306"`
	DBName      string   `envconfig:"DB_NAME" default:"tourbook"`
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	JWTSecret   string   `envconfig:"JWT_SECRET" default:"change-me-in-prod"`
}

func LoadEnv() Env {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		log.Fatalf("config: %v", err)
	}
	env.AppAddr = strings.TrimSpace(env.AppAddr)
	if env.AppAddr == "" {
		env.AppAddr = ":8080"
	}
	if len(env.CORSOrigins) == 0 {
		env.CORSOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	return env
}
