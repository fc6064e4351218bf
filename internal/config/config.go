package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	RedisAddr         string // optional stock mirror
	JWTSecret         string
	JWTExpiresMinutes int
	StaffRoster       string // JSON roster, see auth.ParseRoster

	GeminiAPIKey string
	GeminiAPIURL string

	CloudinaryCloud  string
	CloudinaryPreset string

	Bank BankConfig
}

// BankConfig feeds the settlement QR builder. Fixed per deployment.
type BankConfig struct {
	BankID      string
	AccountNo   string
	AccountName string
	Template    string
}

func Load() Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	dbURL := getEnv("DATABASE_URL", "")
	jwtSecret := getEnv("JWT_SECRET", "dev-secret-change-me")
	jwtExp := getEnvInt("JWT_EXPIRES_MINUTES", 60)

	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return Config{
		Port:              port,
		DatabaseURL:       dbURL,
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		JWTSecret:         jwtSecret,
		JWTExpiresMinutes: jwtExp,
		StaffRoster:       getEnv("STAFF_ROSTER", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),

		CloudinaryCloud:  getEnv("CLOUDINARY_CLOUD", "ddi2aggqq"),
		CloudinaryPreset: getEnv("CLOUDINARY_PRESET", "nhanban_unsigned"),

		Bank: BankConfig{
			BankID:      getEnv("BANK_ID", "vietinbank"),
			AccountNo:   getEnv("BANK_ACCOUNT_NO", "100000713992"),
			AccountName: getEnv("BANK_ACCOUNT_NAME", "NGUYEN DINH HUY"),
			Template:    getEnv("BANK_QR_TEMPLATE", "compact"),
		},
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
