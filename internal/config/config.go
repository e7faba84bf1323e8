package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=standburg port=5432 sslmode=disable"

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	DatabaseDSN        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetimeM int

	JWTSecret          string
	JWTExpirationHours int

	CORSOrigins string

	RedisURL           string
	CatalogCacheTTLSec int

	// Habilita la validación del grafo de estados del pedido.
	StrictOrderTransitions bool
}

func Load() *Config {
	// .env es opcional, en producción las variables vienen del entorno
	_ = godotenv.Load()

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DatabaseDSN:            getEnv("DATABASE_DSN", defaultDSN),
		DBMaxOpenConns:         getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:         getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetimeM:     getEnvAsInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTExpirationHours:     getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		CORSOrigins:            getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RedisURL:               getEnv("REDIS_URL", ""),
		CatalogCacheTTLSec:     getEnvAsInt("CATALOG_CACHE_TTL_SEC", 300),
		StrictOrderTransitions: getEnvAsBool("ORDER_STRICT_TRANSITIONS", false),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET no está definido")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, definí tu propia conexión a Postgres en producción")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins devuelve los orígenes CORS sin espacios.
func (c *Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
