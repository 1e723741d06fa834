package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/bytes"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3AccessKey     string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string `mapstructure:"S3_SECRET_KEY"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`

	NatsURL           string `mapstructure:"NATS_URL"`
	NatsSubjectPrefix string `mapstructure:"NATS_SUBJECT_PREFIX"`

	EmailSweepCron      string        `mapstructure:"EMAIL_SWEEP_CRON"`
	EmailSweepBatchSize int           `mapstructure:"EMAIL_SWEEP_BATCH_SIZE"`
	ReminderCron        string        `mapstructure:"REMINDER_CRON"`
	QuoteExpiryCron     string        `mapstructure:"QUOTE_EXPIRY_CRON"`
	JobTimeout          time.Duration `mapstructure:"JOB_TIMEOUT"`

	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	UploadLimit    string        `mapstructure:"UPLOAD_LIMIT"`
}

var defaults = map[string]any{
	"HTTP_PORT": "8080",
	"APP_ENV":   "development",
	"LOG_LEVEL": "info",

	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "",
	"DB_NAME":     "freightdesk",
	"DB_SSLMODE":  "disable",

	"S3_ENDPOINT":        "",
	"S3_REGION":          "us-east-1",
	"S3_BUCKET":          "freightdesk-documents",
	"S3_ACCESS_KEY":      "",
	"S3_SECRET_KEY":      "",
	"S3_PUBLIC_BASE_URL": "",

	"NATS_URL":            "nats://localhost:4222",
	"NATS_SUBJECT_PREFIX": "notifications.freightdesk",

	"EMAIL_SWEEP_CRON":       "0 */5 * * * *",
	"EMAIL_SWEEP_BATCH_SIZE": 100,
	"REMINDER_CRON":          "0 0 * * * *",
	"QUOTE_EXPIRY_CRON":      "0 */10 * * * *",
	"JOB_TIMEOUT":            "1m",

	"REQUEST_TIMEOUT": "30s",
	"UPLOAD_LIMIT":    "25M",
}

// LoadConfig reads envFile when it exists, then the process environment.
// Environment variables win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.EmailSweepBatchSize <= 0 {
		return Config{}, fmt.Errorf("EMAIL_SWEEP_BATCH_SIZE must be positive, got %d", cfg.EmailSweepBatchSize)
	}
	if cfg.JobTimeout <= 0 {
		return Config{}, fmt.Errorf("JOB_TIMEOUT must be positive, got %s", cfg.JobTimeout)
	}
	if _, err := bytes.Parse(cfg.UploadLimit); err != nil {
		return Config{}, fmt.Errorf("UPLOAD_LIMIT %q: %w", cfg.UploadLimit, err)
	}
	return cfg, nil
}

// DatabaseURL serves both gorm and golang-migrate.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}
