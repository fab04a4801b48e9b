package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/employee-directory/internal"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	skillDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/skill"
	workstationDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/workstation"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Handle bundles the two query layers sharing one connection pool: gorm for
// aggregates and sqlx for hand-written queries.
type Handle struct {
	Gorm *gorm.DB
	SQLX *sqlx.DB
}

func (h *Handle) Close() error {
	return h.SQLX.Close()
}

// SQLDriverName is the database/sql driver registered for a config driver.
func SQLDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&workstationDatamodel.Workstation{},
		&skillDatamodel.Skill{},
		&employeeDatamodel.Employee{},
		&employeeDatamodel.EmployeeSkill{},
		&employeeDatamodel.EmployeeImage{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// NewGormLogger routes gorm's statement logging through slog.
func NewGormLogger(lg *slog.Logger, level string) gormlogger.Interface {
	logLevel := gormlogger.Warn
	switch level {
	case "debug":
		logLevel = gormlogger.Info
	case "error":
		logLevel = gormlogger.Error
	}

	return gormlogger.New(
		slog.NewLogLogger(lg.Handler(), slog.LevelDebug),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GormConfig is shared by the server, the CLI commands and the tests.
func GormConfig(lg gormlogger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         lg,
		TranslateError: true,
	}
}

// SQLiteDSN turns on foreign key enforcement through the DSN, so every
// connection the pool opens has it, not just the first one.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Open connects gorm with the configured driver and wraps the same pool in sqlx.
func Open(cfg internal.DatabaseConfig, lg gormlogger.Interface) (*Handle, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres, "":
		dialector = postgres.New(postgres.Config{
			DSN:        cfg.GetDSN(),
			DriverName: "pgx",
		})
	case internal.DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.GetDSN()))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, GormConfig(lg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Handle{
		Gorm: gdb,
		SQLX: sqlx.NewDb(sqlDB, SQLDriverName(cfg.Driver)),
	}, nil
}
