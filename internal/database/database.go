package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Options selects the store backing the catalog.
type Options struct {
	Driver string // sqlite (default), mysql, postgres
	Path   string // sqlite file path
	DSN    string // mysql/postgres connection string
	LogSQL bool

	// Logger receives gorm's slow-query and error lines; nil discards them.
	Logger *zap.Logger
}

type Database struct {
	DB     *gorm.DB
	driver string
}

// NewDatabase opens (and migrates) a sqlite catalog at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(Options{Driver: config.DriverSQLite, Path: dbPath})
}

// FromConfig maps the application database settings to Options.
func FromConfig(cfg config.Database) Options {
	return Options{
		Driver: cfg.Driver,
		Path:   cfg.Path,
		DSN:    cfg.DSN,
		LogSQL: cfg.LogSQL,
	}
}

func Open(opts Options) (*Database, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	zl := opts.Logger
	if zl == nil {
		zl = zap.NewNop()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(zl, opts.LogSQL),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Publisher{},
		&entities.Tag{},
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	driver := opts.Driver
	if driver == "" {
		driver = config.DriverSQLite
	}
	zl.Info("database initialized", zap.String("driver", driver))

	return &Database{DB: db, driver: driver}, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case "", config.DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path")
		}
		return sqlite.Open(opts.Path), nil
	case config.DriverMySQL:
		if opts.DSN == "" {
			return nil, fmt.Errorf("mysql driver requires DATABASE_DSN")
		}
		return mysql.Open(opts.DSN), nil
	case config.DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_DSN")
		}
		return postgres.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}
}

// Driver reports which backend the connection uses.
func (d *Database) Driver() string {
	return d.driver
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// zapWriter adapts zap to gorm's Printf-style logger.Writer.
type zapWriter struct {
	logger *zap.SugaredLogger
	level  zapcore.Level
}

func (w zapWriter) Printf(format string, args ...any) {
	w.logger.Logf(w.level, format, args...)
}

// newGormLogger logs slow queries and errors at warn level, or every statement
// at debug level when logSQL is set. Missing rows are an expected outcome of
// lookups and are not logged.
func newGormLogger(zl *zap.Logger, logSQL bool) logger.Interface {
	level, writerLevel := logger.Warn, zapcore.WarnLevel
	if logSQL {
		level, writerLevel = logger.Info, zapcore.DebugLevel
	}
	return logger.New(
		zapWriter{logger: zl.WithOptions(zap.AddCallerSkip(3)).Sugar(), level: writerLevel},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
