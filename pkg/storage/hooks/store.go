// Package hooks implements the hook registration store on top of GORM, with
// sqlite, postgres, and mysql dialects.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hookrelay/pkg/storage"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Config holds the connection settings for the hooks table.
type Config struct {
	Driver      string
	DSN         string
	Dialect     string
	Table       string
	AutoMigrate bool
}

// Store implements storage.HookStore on top of GORM.
type Store struct {
	db    *gorm.DB
	table string
}

type row struct {
	HookID      string    `gorm:"column:hook_id;size:128;not null;uniqueIndex:idx_hook_id"`
	Project     string    `gorm:"column:project;size:255"`
	Owner       string    `gorm:"column:owner;size:255"`
	OptionsJSON string    `gorm:"column:options_json;type:text"`
	Active      bool      `gorm:"column:active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Open creates a GORM-backed hook store.
func Open(cfg Config) (*Store, error) {
	if cfg.Driver == "" && cfg.Dialect == "" {
		return nil, errors.New("storage driver or dialect is required")
	}
	if cfg.DSN == "" {
		return nil, errors.New("storage dsn is required")
	}
	driver := normalizeDriver(cfg.Driver)
	if driver == "" {
		driver = normalizeDriver(cfg.Dialect)
	}
	if driver == "" {
		return nil, errors.New("unsupported storage driver")
	}

	gormDB, err := openGorm(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	table := cfg.Table
	if table == "" {
		table = "hooks"
	}
	store := &Store{
		db:    gormDB,
		table: table,
	}
	if cfg.AutoMigrate {
		if err := store.migrate(); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Close closes the underlying DB connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UpsertHook inserts or updates a hook registration.
func (s *Store) UpsertHook(ctx context.Context, record storage.HookRecord) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	if record.HookID == "" {
		return errors.New("hook_id is required")
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	data := toRow(record)
	return s.tableDB().
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hook_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"project", "owner", "options_json", "active", "updated_at"}),
		}).
		Create(&data).Error
}

// GetHook fetches a hook registration by id.
func (s *Store) GetHook(ctx context.Context, hookID string) (*storage.HookRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	var data row
	err := s.tableDB().
		WithContext(ctx).
		Where("hook_id = ?", hookID).
		Take(&data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record := fromRow(data)
	return &record, nil
}

// ListHooks lists hook registrations by filter.
func (s *Store) ListHooks(ctx context.Context, filter storage.HookFilter) ([]storage.HookRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	query := s.tableDB().WithContext(ctx)
	if filter.Project != "" {
		query = query.Where("project = ?", filter.Project)
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	var data []row
	if err := query.Find(&data).Error; err != nil {
		return nil, err
	}
	records := make([]storage.HookRecord, 0, len(data))
	for _, item := range data {
		records = append(records, fromRow(item))
	}
	return records, nil
}

// DeactivateHook marks a hook inactive without deleting its options.
func (s *Store) DeactivateHook(ctx context.Context, hookID string) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	return s.tableDB().
		WithContext(ctx).
		Where("hook_id = ?", hookID).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now().UTC()}).Error
}

func (s *Store) migrate() error {
	return s.tableDB().AutoMigrate(&row{})
}

func (s *Store) tableDB() *gorm.DB {
	return s.db.Table(s.table)
}

func toRow(record storage.HookRecord) row {
	return row{
		HookID:      record.HookID,
		Project:     record.Project,
		Owner:       record.Owner,
		OptionsJSON: record.OptionsJSON,
		Active:      record.Active,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func fromRow(data row) storage.HookRecord {
	return storage.HookRecord{
		HookID:      data.HookID,
		Project:     data.Project,
		Owner:       data.Owner,
		OptionsJSON: data.OptionsJSON,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func normalizeDriver(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "postgres", "postgresql", "pgx":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return ""
	}
}

func openGorm(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
