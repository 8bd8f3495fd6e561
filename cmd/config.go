package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"haulage/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string

	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// NATSURL empty keeps events in the log only.
	NATSURL           string
	NATSSubjectPrefix string

	EvidenceDir       string
	UploadConcurrency int

	LowStockThreshold decimal.Decimal
	LowStockSchedule  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "haulage")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ISSUER", "haulage")
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("NATS_SUBJECT_PREFIX", "haulage")
	v.SetDefault("EVIDENCE_DIR", "./data/evidence")
	v.SetDefault("UPLOAD_CONCURRENCY", 4)
	v.SetDefault("LOW_STOCK_THRESHOLD", "10")
	v.SetDefault("LOW_STOCK_SCHEDULE", "*/15 * * * *")
}

// LoadConfig reads envFile into the process environment when it exists,
// then resolves every setting from the environment with defaults.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	threshold, err := decimal.NewFromString(strings.TrimSpace(v.GetString("LOW_STOCK_THRESHOLD")))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("LOW_STOCK_THRESHOLD", err)
	}

	cfg := Config{
		Env:               v.GetString("APP_ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPPort:          v.GetString("HTTP_PORT"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSslMode:         v.GetString("DB_SSLMODE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		JWTTTL:            time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		NATSURL:           v.GetString("NATS_URL"),
		NATSSubjectPrefix: v.GetString("NATS_SUBJECT_PREFIX"),
		EvidenceDir:       v.GetString("EVIDENCE_DIR"),
		UploadConcurrency: v.GetInt("UPLOAD_CONCURRENCY"),
		LowStockThreshold: threshold,
		LowStockSchedule:  v.GetString("LOW_STOCK_SCHEDULE"),
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.DBHost == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if c.DBName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.LowStockThreshold.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("LOW_STOCK_THRESHOLD", c.LowStockThreshold, 0, "unbounded"))
	}
	if _, err := cron.ParseStandard(c.LowStockSchedule); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOW_STOCK_SCHEDULE", err))
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("JWT_TTL_MINUTES", c.JWTTTL.Minutes(), 1, "unbounded"))
	}
	return errors.Join(problems...)
}

// DSN is the libpq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
