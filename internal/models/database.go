package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database, migrates the schema and registers the
// callbacks that translate database errors.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		err := createSQLiteDirectory(dsn)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}

	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite only supports one writer, more connections lead to SQLITE_BUSY errors
	if driver == DriverSQLite {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// createSQLiteDirectory creates the directory of the SQLite database file.
func createSQLiteDirectory(dsn string) error {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	err := os.MkdirAll(dir, 0o750)
	if err != nil {
		return fmt.Errorf("cannot create SQLite database directory '%s': %w", dir, err)
	}

	return nil
}

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Identity{}, Session{}, Category{}, Transaction{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "finanzas:after_query", queryCallback},
		{db.Callback().Query().After("*"), "finanzas:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "finanzas:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "finanzas:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "finanzas:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "finanzas:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "finanzas:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err := c.processor.Register(c.name, c.fn)
		if err != nil {
			return err
		}
	}

	return nil
}

var plural = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		name = plural.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	// Category names need to be unique per user
	if strings.Contains(msg, "UNIQUE constraint failed: categories.user_id, categories.name") || strings.Contains(msg, "idx_category_user_name") {
		db.Error = ErrCategoryNameNotUnique
		return
	}

	// Only one identity per email address
	if strings.Contains(msg, "UNIQUE constraint failed: identities.email") || strings.Contains(msg, "idx_identity_email") {
		db.Error = ErrEmailInUse
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	var sqliteErr *go_sqlite.Error
	if db.Error.Error() == "sql: database is closed" || errors.As(db.Error, &sqliteErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}
