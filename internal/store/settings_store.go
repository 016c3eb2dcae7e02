package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/storage"
)

// SettingsAccess is the surface the settings handler consumes.
type SettingsAccess interface {
	GetSettings(ctx context.Context) (*domain.AppSettings, error)
	SaveSettings(ctx context.Context, settings domain.AppSettings) error
}

var defaultSettings = domain.AppSettings{
	Currency:   "RUB",
	DateFormat: "2006-01-02",
	Theme:      "light",
}

// SettingsStore persists the flat UI configuration blob under its own key.
type SettingsStore struct {
	mu      sync.Mutex
	storage storage.Storage
}

func NewSettingsStore(st storage.Storage) *SettingsStore {
	return &SettingsStore{storage: st}
}

func (s *SettingsStore) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Load(ctx, storage.KeySettings)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if data == nil {
		settings := defaultSettings
		return &settings, nil
	}

	var settings domain.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

func (s *SettingsStore) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.storage.Save(ctx, storage.KeySettings, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

var _ SettingsAccess = (*SettingsStore)(nil)
