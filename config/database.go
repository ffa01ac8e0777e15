package config

import (
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
)

// AcquireDB returns the process-wide database handle, establishing the
// connection exactly once no matter how many callers race on startup.
// Subsequent calls return the same live handle.
func AcquireDB() (*gorm.DB, error) {
	dbOnce.Do(func() {
		dsn := os.Getenv("DB_URL")
		if dsn == "" {
			dbErr = errors.New("DB_URL not set")
			return
		}

		db, dbErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if dbErr != nil {
			return
		}

		sqlDB, err := db.DB()
		if err != nil {
			dbErr = err
			return
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)

		log.Info().Msg("Database connection established")
	})
	return db, dbErr
}

// MustDB is AcquireDB for callers that cannot proceed without storage.
func MustDB() *gorm.DB {
	handle, err := AcquireDB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect database")
	}
	return handle
}
