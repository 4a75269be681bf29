package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/blocklist/domain"
	"github.com/callshield/callshield/internal/blocklist/repository"
	"github.com/callshield/callshield/internal/clock"
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
	require.NoError(t, db.AutoMigrate(&domain.BlockedNumber{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
}

func TestBlockIsIdempotentAcrossFormats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Block(ctx, domain.BlockRequest{Number: "0821234567", Reason: "Telemarketer"})
	require.NoError(t, err)

	second, err := svc.Block(ctx, domain.BlockRequest{Number: "+27 82 123 4567", Name: "Other", AutoBlocked: true})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Telemarketer", second.Reason)
	assert.False(t, second.AutoBlocked)

	records, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestBlockRejectsEmptyNumber(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Block(context.Background(), domain.BlockRequest{Number: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
}

func TestUnblockRemovesAndIsNoOpWhenMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Block(ctx, domain.BlockRequest{Number: "0821234567"})
	require.NoError(t, err)

	require.NoError(t, svc.Unblock(ctx, "+27 82 123 4567"))

	blocked, err := svc.IsBlocked(ctx, "0821234567")
	require.NoError(t, err)
	assert.False(t, blocked)

	// never-blocked number
	require.NoError(t, svc.Unblock(ctx, "0119990000"))
}

func TestIsBlockedMatchesByNormalizedKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Block(ctx, domain.BlockRequest{Number: "+27 11 999 0000"})
	require.NoError(t, err)

	blocked, err := svc.IsBlocked(ctx, "27119990000")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestSearchMatchesNameAndNumberBranches(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Block(ctx, domain.BlockRequest{Number: "0821234567", Name: "Scammer"})
	require.NoError(t, err)
	_, err = svc.Block(ctx, domain.BlockRequest{Number: "0119990000"})
	require.NoError(t, err)

	byName, err := svc.Search(ctx, "scam")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Scammer", byName[0].Name)

	byNumber, err := svc.Search(ctx, "9990")
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "0119990000", byNumber[0].NormalizedNumber)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := svc.Search(ctx, "no-such-entry")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClearAutoBlockedPreservesManualBlocks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Block(ctx, domain.BlockRequest{Number: "0112345678", AutoBlocked: true})
	require.NoError(t, err)
	_, err = svc.Block(ctx, domain.BlockRequest{Number: "0111112222", AutoBlocked: true})
	require.NoError(t, err)
	_, err = svc.Block(ctx, domain.BlockRequest{Number: "0215556789"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAutoBlocked(ctx))

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0215556789", records[0].NormalizedNumber)
	assert.False(t, records[0].AutoBlocked)
}

func TestClearAllAndCounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Block(ctx, domain.BlockRequest{Number: "0112345678", AutoBlocked: true})
	require.NoError(t, err)
	_, err = svc.Block(ctx, domain.BlockRequest{Number: "0215556789"})
	require.NoError(t, err)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Total)
	assert.Equal(t, int64(1), counts.Auto)
	assert.Equal(t, int64(1), counts.Manual)

	require.NoError(t, svc.ClearAll(ctx))

	counts, err = svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Total)
}
