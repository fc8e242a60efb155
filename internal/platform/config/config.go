package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa todo lo que el servicio lee del entorno.
type Config struct {
	Port string

	BackendURL     string
	BackendTimeout time.Duration

	ViaCEPURL     string
	ViaCEPTimeout time.Duration

	// Vacío => drafts in-memory.
	DBDSN string

	SessionSecret string
	SessionTTL    time.Duration

	LogLevel  string
	LogFormat string
	AppName   string
}

var ErrMissingBackendURL = errors.New("config: BACKEND_URL is required")

// Load lee .env (si existe) y después las variables de entorno.
// Las variables de entorno ganan sobre el .env.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("config: load .env: %w", err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("VIACEP_URL", "https://viacep.com.br")
	v.SetDefault("VIACEP_TIMEOUT", "5s")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "remedio-solidario")
	return v
}

// FromViper arma el Config desde una instancia ya poblada (tests usan v.Set).
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           strings.TrimPrefix(strings.TrimSpace(v.GetString("PORT")), ":"),
		BackendURL:     strings.TrimRight(strings.TrimSpace(v.GetString("BACKEND_URL")), "/"),
		BackendTimeout: v.GetDuration("BACKEND_TIMEOUT"),
		ViaCEPURL:      strings.TrimRight(strings.TrimSpace(v.GetString("VIACEP_URL")), "/"),
		ViaCEPTimeout:  v.GetDuration("VIACEP_TIMEOUT"),
		DBDSN:          strings.TrimSpace(v.GetString("DB_DSN")),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		AppName:        v.GetString("APP_NAME"),
	}

	if cfg.BackendURL == "" {
		return Config{}, ErrMissingBackendURL
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// Defaults devuelve la config por defecto sin leer el entorno (útil para tests).
func Defaults() *viper.Viper {
	return newViper()
}
