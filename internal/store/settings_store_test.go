package store

import (
	"context"
	"testing"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestSettingsStore_DefaultsWhenEmpty(t *testing.T) {
	s := NewSettingsStore(storage.NewMemory())

	settings, err := s.GetSettings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "RUB", settings.Currency)
	assert.Equal(t, "light", settings.Theme)
}

func TestSettingsStore_SaveThenGet(t *testing.T) {
	s := NewSettingsStore(storage.NewMemory())
	ctx := context.Background()

	saved := domain.AppSettings{
		Currency:    "USD",
		DateFormat:  "02.01.2006",
		Theme:       "dark",
		CompanyName: "Sunrise Travel",
	}
	assert.NoError(t, s.SaveSettings(ctx, saved))

	got, err := s.GetSettings(ctx)
	assert.NoError(t, err)
	assert.Equal(t, saved, *got)
}
