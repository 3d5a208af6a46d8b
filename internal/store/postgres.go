package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// PostgresStore backs the Term Store with a direct database connection for
// self-hosted deployments. The schema is automigrated and seeded with the
// packaged glossary on first run.
type PostgresStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPostgresStore connects, migrates, and seeds the terms table
func NewPostgresStore(cfg *config.DBConfig, logger *zap.Logger) (*PostgresStore, error) {
	logLevel := cfg.LogLevel
	if logLevel == 0 {
		logLevel = gormlogger.Warn
	}

	// PreferSimpleProtocol disables implicit prepared statement usage, which
	// avoids "prepared statement already exists" errors behind poolers.
	pgConfig := postgres.Config{
		DSN:                  cfg.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database connection: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&model.Term{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	s := &PostgresStore{db: db, logger: logger}
	if err := s.seedIfEmpty(); err != nil {
		return nil, err
	}

	logger.Info("Database connected and migrated")
	return s, nil
}

func (s *PostgresStore) seedIfEmpty() error {
	var count int64
	if err := s.db.Model(&model.Term{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.db.Create(&model.SeedTerms).Error; err != nil {
		return err
	}
	s.logger.Info("Seeded starter glossary", zap.Int("terms", len(model.SeedTerms)))
	return nil
}

// ListApproved returns all approved terms ordered by name
func (s *PostgresStore) ListApproved(ctx context.Context) ([]model.Term, error) {
	defer prometheus.TrackStoreOperation("list_approved")(time.Now())

	var terms []model.Term
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusApproved).
		Order("term asc").
		Find(&terms).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return terms, nil
}

// ListPending returns the moderation queue, newest first
func (s *PostgresStore) ListPending(ctx context.Context) ([]model.Term, error) {
	defer prometheus.TrackStoreOperation("list_pending")(time.Now())

	var terms []model.Term
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("created_at desc").
		Find(&terms).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return terms, nil
}

// GetByID fetches one term by primary key
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*model.Term, error) {
	defer prometheus.TrackStoreOperation("get_by_id")(time.Now())

	var term model.Term
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &term, nil
}

// Insert creates a new term row
func (s *PostgresStore) Insert(ctx context.Context, term *model.Term) error {
	defer prometheus.TrackStoreOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(term).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// UpdateStatus transitions a term's lifecycle state
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status model.TermStatus) error {
	defer prometheus.TrackStoreOperation("update_status")(time.Now())

	result := s.db.WithContext(ctx).
		Model(&model.Term{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Update replaces the mutable fields of a term
func (s *PostgresStore) Update(ctx context.Context, term *model.Term) error {
	defer prometheus.TrackStoreOperation("update")(time.Now())

	result := s.db.WithContext(ctx).
		Model(&model.Term{}).
		Where("id = ?", term.ID).
		Updates(map[string]interface{}{
			"term":       term.Term,
			"definition": term.Definition,
			"example":    term.Example,
			"category":   term.Category,
			"tags":       term.Tags,
			"status":     term.Status,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
