package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/settings/domain"
	"github.com/callshield/callshield/internal/settings/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.UserSettings{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestGetCreatesDefaultsOnFirstRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	require.NoError(t, err)

	assert.False(t, settings.AutoBlockSpam)
	assert.Equal(t, 80, settings.AutoBlockThreshold)
	assert.True(t, settings.ShowCallOverlay)
	assert.True(t, settings.PostCallPrompt)
	assert.True(t, settings.WifiOnlySync)
	assert.True(t, settings.EnableNotifications)
	assert.Equal(t, domain.DarkModeSystem, settings.DarkMode)
	assert.Equal(t, "en", settings.Language)
	assert.Nil(t, settings.LastSyncAt)

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestUpdateMergesOnlySetFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	enabled := true
	threshold := 70
	updated, err := svc.Update(ctx, domain.UpdateRequest{
		AutoBlockSpam:      &enabled,
		AutoBlockThreshold: &threshold,
	})
	require.NoError(t, err)

	assert.True(t, updated.AutoBlockSpam)
	assert.Equal(t, 70, updated.AutoBlockThreshold)
	// untouched fields keep their defaults
	assert.True(t, updated.ShowCallOverlay)
	assert.Equal(t, domain.DarkModeSystem, updated.DarkMode)

	dark := domain.DarkModeDark
	updated, err = svc.Update(ctx, domain.UpdateRequest{DarkMode: &dark})
	require.NoError(t, err)
	assert.Equal(t, domain.DarkModeDark, updated.DarkMode)
	assert.True(t, updated.AutoBlockSpam)
	assert.Equal(t, 70, updated.AutoBlockThreshold)
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	bad := 101
	_, err := svc.Update(ctx, domain.UpdateRequest{AutoBlockThreshold: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)

	mode := domain.DarkMode("sepia")
	_, err = svc.Update(ctx, domain.UpdateRequest{DarkMode: &mode})
	assert.ErrorIs(t, err, domain.ErrInvalidDarkMode)

	empty := "  "
	_, err = svc.Update(ctx, domain.UpdateRequest{Language: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
}

func TestResetRestoresDefaultsKeepingRow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	original, err := svc.Get(ctx)
	require.NoError(t, err)

	enabled := true
	language := "af"
	_, err = svc.Update(ctx, domain.UpdateRequest{AutoBlockSpam: &enabled, Language: &language})
	require.NoError(t, err)

	reset, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, original.ID, reset.ID)
	assert.False(t, reset.AutoBlockSpam)
	assert.Equal(t, "en", reset.Language)
}
