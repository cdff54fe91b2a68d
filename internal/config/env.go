package config

import (
	"os"
	"strconv"
	"sync"
)

type Env struct {
	Port       int
	AppURL     string
	GinIsDebug bool

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDb       string

	ValkeyHost     string
	ValkeyPort     string
	ValkeyUsername string
	ValkeyPassword string
	ValkeyIsSsl    bool

	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	DailyUploadCapBytes int64
}

var (
	once sync.Once
	env  *Env
)

func GetEnv() *Env {
	once.Do(func() {
		env = &Env{
			Port:       getEnvInt("PORT", 4005),
			AppURL:     getEnvString("APP_URL", "http://localhost:4005"),
			GinIsDebug: getEnvBool("GIN_DEBUG", false),

			PostgresHost:     getEnvString("POSTGRES_HOST", "localhost"),
			PostgresPort:     getEnvString("POSTGRES_PORT", "5432"),
			PostgresUser:     getEnvString("POSTGRES_USER", "blizzshare"),
			PostgresPassword: getEnvString("POSTGRES_PASSWORD", "blizzshare"),
			PostgresDb:       getEnvString("POSTGRES_DB", "blizzshare"),

			ValkeyHost:     getEnvString("VALKEY_HOST", "localhost"),
			ValkeyPort:     getEnvString("VALKEY_PORT", "6379"),
			ValkeyUsername: getEnvString("VALKEY_USERNAME", ""),
			ValkeyPassword: getEnvString("VALKEY_PASSWORD", ""),
			ValkeyIsSsl:    getEnvBool("VALKEY_IS_SSL", false),

			S3Region:       getEnvString("S3_REGION", "us-east-1"),
			S3Bucket:       getEnvString("S3_BUCKET", "blizz-share"),
			S3AccessKey:    getEnvString("S3_ACCESS_KEY", ""),
			S3SecretKey:    getEnvString("S3_SECRET_KEY", ""),
			S3BaseEndpoint: getEnvString("S3_BASE_ENDPOINT", ""),

			SMTPHost:     getEnvString("SMTP_HOST", ""),
			SMTPPort:     getEnvInt("SMTP_PORT", 0),
			SMTPUser:     getEnvString("SMTP_USER", ""),
			SMTPPassword: getEnvString("SMTP_PASSWORD", ""),
			SMTPFrom:     getEnvString("SMTP_FROM", "noreply@blizz.share"),

			DailyUploadCapBytes: getEnvInt64(
				"DAILY_UPLOAD_CAP_BYTES",
				5*1024*1024*1024,
			),
		}
	})

	return env
}

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
