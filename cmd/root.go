package cmd

import (
	"haulage/internal/adapters/out/postgres"
	"haulage/internal/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "haulage",
	Short: "Dispatch service for a bulk haulage yard",
	Long: `Haulage tracks trucks, customer orders and material stock, assigns
trucks to orders and drives each dispatch through the weighbridge workflow.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the command named on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// bootstrap loads the configuration, the logger and the database shared
// by every subcommand.
func bootstrap() (Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return Config{}, zerolog.Nop(), nil, err
	}
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	gormLevel := gormlogger.Silent
	if cfg.Env == "development" {
		gormLevel = gormlogger.Warn
	}
	db, err := postgres.Open(cfg.DSN(), gormLevel)
	if err != nil {
		return Config{}, log, nil, err
	}
	return cfg, log, db, nil
}

func closeDB(db *gorm.DB, log zerolog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database")
	}
}
