package datastore

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/fitter"
)

// SQLiteStore writes fit records to a SQLite database via GORM.
type SQLiteStore struct {
	path string
	db   *gorm.DB
}

// NewSQLiteStore creates a store backed by the database file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Open creates the database directory if needed, opens the database and
// migrates the schema.
func (s *SQLiteStore) Open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", dir).
			Build()
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", s.path).
			Build()
	}

	if err := db.AutoMigrate(&FitRecord{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "migrate").
			Build()
	}

	s.db = db
	return nil
}

// Save writes all records for one plate in a single transaction. Existing
// rows for the plate are replaced, so re-running a plate never leaves a
// mix of old and new output.
func (s *SQLiteStore) Save(plate int, records []fitter.Record) error {
	start := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plate = ?", plate).Delete(&FitRecord{}).Error; err != nil {
			return err
		}
		for i := range records {
			row := toFitRecord(&records[i])
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("plate", plate).
			Timing("save", time.Since(start)).
			Build()
	}
	return nil
}

// HasPlate reports whether any rows exist for the plate.
func (s *SQLiteStore) HasPlate(plate int) (bool, error) {
	var count int64
	if err := s.db.Model(&FitRecord{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
		return false, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("plate", plate).
			Build()
	}
	return count > 0, nil
}

// GetPlate loads the stored records for one plate, ordered by spectrum
// identifier.
func (s *SQLiteStore) GetPlate(plate int) ([]fitter.Record, error) {
	var rows []FitRecord
	if err := s.db.Where("plate = ?", plate).Order("spec_no").Find(&rows).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("plate", plate).
			Build()
	}

	records := make([]fitter.Record, 0, len(rows))
	for i := range rows {
		records = append(records, fromFitRecord(&rows[i]))
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
