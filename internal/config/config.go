package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// logger config
	LOG_FILE_PATH string
	// auth config
	AUTH_JWT_SECRET string
	// issuing company shown in every exported document header
	ISSUER_NAME    string
	ISSUER_ADDRESS string
	ISSUER_EMAIL   string
	ISSUER_PHONE   string
	// export config
	EXPORT_MAX_BATCH int
	// logo asset store (GCP Datastore); empty project disables the store
	GCP_PROJECT_ID string
	// export-history search mirror; empty URL disables indexing
	ELASTIC_URL string
}

func LoadEnvConfig() error {
	// A missing .env is fine in containerized runs where env vars are injected.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "procurement"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		AUTH_JWT_SECRET:      getEnvString("AUTH_JWT_SECRET", ""),
		ISSUER_NAME:          getEnvString("ISSUER_NAME", "ProcureHub Procurement"),
		ISSUER_ADDRESS:       getEnvString("ISSUER_ADDRESS", "1 Commerce Park, Springfield"),
		ISSUER_EMAIL:         getEnvString("ISSUER_EMAIL", "purchasing@procurehub.example.com"),
		ISSUER_PHONE:         getEnvString("ISSUER_PHONE", "+1-555-0199"),
		EXPORT_MAX_BATCH:     getEnvInt("EXPORT_MAX_BATCH", 10),
		GCP_PROJECT_ID:       getEnvString("GCP_PROJECT_ID", ""),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
