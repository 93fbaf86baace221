package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth mode selects which Authenticator implementation the process runs with.
const (
	ModeServer = "server"
	ModeLocal  = "local"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	// SessionTTL bounds every issued session token.
	SessionTTL time.Duration

	AdminEmail    string
	AdminPassword string
	AdminName     string

	DataFile   string
	BcryptCost int

	AuthMode     string
	LocalDataDir string

	CORSOrigins []string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:       getEnv("PORT", "4000"),
		JWTKey:        []byte(getEnv("JWT_SECRET", "dev-secret-change-me")),
		SessionTTL:    time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		AdminEmail:    strings.ToLower(getEnv("ADMIN_EMAIL", "admin@telco.dev")),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin123"),
		AdminName:     getEnv("ADMIN_NAME", "Admin Demo"),
		DataFile:      getEnv("DATA_FILE", "data.json"),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),
		AuthMode:      getEnv("AUTH_MODE", ModeServer),
		LocalDataDir:  getEnv("LOCAL_DATA_DIR", ".localdata"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
