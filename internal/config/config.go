package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	CronSecret string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "famhub_user"),
		DBPassword: getEnv("DB_PASSWORD", "famhub_pass"),
		DBName:     getEnv("DB_NAME", "famhub_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		// Empty means the cron endpoint is open (local/dev deployments).
		CronSecret: getEnv("CRON_SECRET", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
