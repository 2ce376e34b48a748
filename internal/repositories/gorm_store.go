package repositories

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"storefront/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// position hands out strictly increasing values used to keep insertion order
// stable across backends that do not guarantee row order.
var position = func() *atomic.Int64 {
	p := new(atomic.Int64)
	p.Store(time.Now().UnixNano())
	return p
}()

func nextPosition() int64 {
	return position.Add(1)
}

// OpenGORM connects to a sqlite or postgres database.
func OpenGORM(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	driver = strings.ToLower(driver)
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		// sqlite allows a single writer; serialize through one connection.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewGORMStore migrates the schema and returns a Store backed by db.
func NewGORMStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.CartItem{},
		&models.Order{},
		&models.Review{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{
		Driver:     db.Dialector.Name(),
		Products:   NewGORMProductRepository(db),
		Categories: NewGORMCategoryRepository(db),
		Cart:       NewGORMCartRepository(db),
		Orders:     NewGORMOrderRepository(db),
		Reviews:    NewGORMReviewRepository(db),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

// translateError maps gorm errors onto the package sentinels.
func translateError(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
