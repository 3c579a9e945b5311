package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sheikhstore/storefront/internal/domain/cart"
)

// snapshot is one storage key with its JSON payload.
type snapshot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (snapshot) TableName() string {
	return "shop_snapshots"
}

// SqliteStore keeps the storage keys in a local sqlite database, for
// deployments where a data directory of loose files is unwanted.
type SqliteStore struct {
	db *gorm.DB
}

// NewSqliteStore opens (or creates) the database file and migrates the
// snapshot table.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cartstore: opening sqlite database: %w", err)
	}
	return NewSqliteStoreWithDB(db)
}

// NewSqliteStoreWithDB wraps an existing gorm connection. Used by tests
// and by callers that manage the connection themselves.
func NewSqliteStoreWithDB(db *gorm.DB) (*SqliteStore, error) {
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("cartstore: migrating snapshot table: %w", err)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) load(ctx context.Context, key string, v any) (bool, error) {
	var rec snapshot
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("cartstore: reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(rec.Payload), v); err != nil {
		return false, fmt.Errorf("cartstore: malformed %s snapshot: %w", key, err)
	}
	return true, nil
}

func (s *SqliteStore) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cartstore: encoding %s: %w", key, err)
	}
	rec := snapshot{Key: key, Payload: string(payload), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("cartstore: writing %s: %w", key, err)
	}
	return nil
}

// Load reads the persisted line-item sequence, (nil, nil) when absent.
func (s *SqliteStore) Load(ctx context.Context) ([]cart.LineItem, error) {
	var items []cart.LineItem
	found, err := s.load(ctx, CartKey, &items)
	if err != nil || !found {
		return nil, err
	}
	return items, nil
}

// Save overwrites the cart snapshot with the full current sequence.
func (s *SqliteStore) Save(ctx context.Context, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	return s.save(ctx, CartKey, items)
}

// Language reads the persisted language preference, "" when unset.
func (s *SqliteStore) Language(ctx context.Context) (string, error) {
	var lang string
	if _, err := s.load(ctx, LanguageKey, &lang); err != nil {
		return "", err
	}
	return lang, nil
}

// SetLanguage persists the language preference.
func (s *SqliteStore) SetLanguage(ctx context.Context, lang string) error {
	return s.save(ctx, LanguageKey, lang)
}
