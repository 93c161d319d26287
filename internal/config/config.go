package config

import (
	"os"
	"strings"
)

type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string
	JWTSecret   string
	// SiteURL is the public origin used in password-reset links.
	SiteURL     string
	CORSOrigins string

	RedisAddr     string
	RedisPassword string

	Storage StorageConfig
	Mail    MailConfig
}

// MailConfig selects SMTP delivery for reset links. Without a host the
// links are only logged.
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type StorageConfig struct {
	Driver    string
	Bucket    string
	LocalRoot string
	URL       string
	Region    string
	Key       string
	Secret    string
	Endpoint  string
}

func Load() Config {
	addr := getEnv("APP_ADDR", ":8080")
	return Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SiteURL:       strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			Bucket:    getEnv("STORAGE_BUCKET", "product-images"),
			LocalRoot: getEnv("STORAGE_LOCAL_ROOT", "storage/product-images"),
			URL:       getEnv("STORAGE_URL", "http://localhost"+addr+"/storage/product-images"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Key:       os.Getenv("S3_KEY"),
			Secret:    os.Getenv("S3_SECRET"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
		},
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     getEnv("MAIL_PORT", "587"),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
		},
	}
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
