package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port                 string
	MongoURI             string
	DBName               string
	UserJWTSecret        string
	AdminJWTSecret       string
	SessionTTL           time.Duration
	UploadDir            string
	CORSOrigins          []string
	RedisAddr            string
	CascadeProductDelete bool
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		Port:           getEnvOrDefault("PORT", "5000"),
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "vastra"),
		UserJWTSecret:  getEnvOrDefault("USER_JWT_SECRET", ""),
		AdminJWTSecret: getEnvOrDefault("ADMIN_JWT_SECRET", ""),
		SessionTTL:     getDurationEnv("SESSION_TTL_DAYS", 7, 24*time.Hour),
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "uploads"),
		CORSOrigins: getListEnv("CORS_ORIGINS",
			"http://localhost:5173", "http://localhost:3000"),
		RedisAddr:            getEnvOrDefault("REDIS_ADDR", ""),
		CascadeProductDelete: getBoolEnv("CASCADE_PRODUCT_DELETE", false),
	}

	if AppEnv.UserJWTSecret == "" || AppEnv.AdminJWTSecret == "" {
		log.Fatal("USER_JWT_SECRET and ADMIN_JWT_SECRET are required")
	}
	if AppEnv.UserJWTSecret == AppEnv.AdminJWTSecret {
		log.Fatal("USER_JWT_SECRET and ADMIN_JWT_SECRET must differ")
	}
}
