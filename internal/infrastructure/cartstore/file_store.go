package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sheikhstore/storefront/internal/domain/cart"
)

// Storage keys, carried over from the browser build of the storefront so
// a profile's layout stays recognizable.
const (
	CartKey     = "sheikh-store-cart"
	LanguageKey = "sheikh-store-language"
)

// FileStore keeps each storage key as one JSON file in a data directory,
// the durable analog of the browser's localStorage. Every save rewrites
// the whole snapshot; last write wins.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cartstore: creating data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) read(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("cartstore: reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cartstore: malformed %s snapshot: %w", key, err)
	}
	return true, nil
}

func (s *FileStore) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cartstore: encoding %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cartstore: writing %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("cartstore: writing %s: %w", key, err)
	}
	return nil
}

// Load reads the persisted line-item sequence. A missing snapshot is not
// an error; a malformed one is, so the caller can log and start empty.
func (s *FileStore) Load(_ context.Context) ([]cart.LineItem, error) {
	var items []cart.LineItem
	found, err := s.read(CartKey, &items)
	if err != nil || !found {
		return nil, err
	}
	return items, nil
}

// Save overwrites the cart snapshot with the full current sequence.
func (s *FileStore) Save(_ context.Context, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	return s.write(CartKey, items)
}

// Language reads the persisted language preference, "" when unset.
func (s *FileStore) Language(_ context.Context) (string, error) {
	var lang string
	if _, err := s.read(LanguageKey, &lang); err != nil {
		return "", err
	}
	return lang, nil
}

// SetLanguage persists the language preference.
func (s *FileStore) SetLanguage(_ context.Context, lang string) error {
	return s.write(LanguageKey, lang)
}
