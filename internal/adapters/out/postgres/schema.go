package postgres

import (
	"context"
	"fmt"

	"haulage/internal/adapters/out/postgres/customerrepo"
	"haulage/internal/adapters/out/postgres/dispatchrepo"
	"haulage/internal/adapters/out/postgres/exceptionrepo"
	"haulage/internal/adapters/out/postgres/materialrepo"
	"haulage/internal/adapters/out/postgres/mediarepo"
	"haulage/internal/adapters/out/postgres/orderrepo"
	"haulage/internal/adapters/out/postgres/truckrepo"
	"haulage/internal/adapters/out/postgres/userrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tables lists every table Migrate manages, children last.
var Tables = []string{
	"exception_logs", "dispatch_media", "dispatches", "orders",
	"trucks", "materials", "customers", "users",
}

// Open connects to PostgreSQL. Unique-key violations are translated to
// gorm.ErrDuplicatedKey, which the repositories rely on.
func Open(dsn string, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&userrepo.UserDTO{},
		&customerrepo.CustomerDTO{},
		&materialrepo.MaterialDTO{},
		&truckrepo.TruckDTO{},
		&orderrepo.OrderDTO{},
		&dispatchrepo.DispatchDTO{},
		&mediarepo.MediaDTO{},
		&exceptionrepo.ExceptionDTO{},
	)
}
