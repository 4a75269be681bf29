package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/clock"
	"github.com/callshield/callshield/internal/phonenumber/domain"
	"github.com/callshield/callshield/internal/phonenumber/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testEnv struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.PhoneNumber{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})

	return &testEnv{svc: svc, db: db, node: node, clock: fake}
}

func TestLookupMatchesNumberVariants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Upsert(ctx, domain.UpsertRequest{
		Number:         "0821234567",
		Classification: domain.ClassificationHighSpam,
		Category:       domain.CategoryTelemarketer,
		SpamScore:      92,
		ReportCount:    847,
	})
	require.NoError(t, err)

	for _, input := range []string{"+27821234567", "27 82 123 4567", "0821234567"} {
		record, err := env.svc.Lookup(ctx, input)
		require.NoError(t, err, input)
		require.NotNil(t, record, input)
		assert.Equal(t, "0821234567", record.NormalizedNumber, input)
		assert.Equal(t, 92, record.SpamScore, input)
	}
}

func TestLookupFallsBackToRawNumberColumn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Legacy row stored before normalization: raw number only.
	legacy := domain.PhoneNumber{
		ID:             env.node.Generate(),
		Number:         "082 555 0000",
		Classification: domain.ClassificationLowSpam,
		Category:       domain.CategoryTelemarketer,
		SpamScore:      45,
		Source:         domain.SourceDatabase,
		Metadata:       datatypes.JSONMap{},
	}
	require.NoError(t, env.db.Create(&legacy).Error)

	record, err := env.svc.Lookup(ctx, "082 555 0000")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, legacy.ID, record.ID)
	assert.Equal(t, domain.ClassificationLowSpam, record.Classification)

	// A variant that only resolves via the normalized key still misses.
	record, err = env.svc.Lookup(ctx, "+27825550000")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestLookupMissReturnsNilNotError(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.svc.Lookup(context.Background(), "0860000000")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestUpsertValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Upsert(ctx, domain.UpsertRequest{Number: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)

	_, err = env.svc.Upsert(ctx, domain.UpsertRequest{Number: "0821234567", SpamScore: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidSpamScore)

	_, err = env.svc.Upsert(ctx, domain.UpsertRequest{Number: "0821234567", Classification: "shady"})
	assert.ErrorIs(t, err, domain.ErrInvalidClassification)
}

func TestUpsertDefaultsAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Upsert(ctx, domain.UpsertRequest{Number: "0829998888"})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationUnknown, created.Classification)
	assert.Equal(t, domain.CategoryUnknown, created.Category)
	assert.Equal(t, domain.SourceDatabase, created.Source)
	require.NotNil(t, created.LastUpdated)
	assert.Equal(t, env.clock.Now().UTC(), *created.LastUpdated)

	env.clock.Advance(time.Hour)
	updated, err := env.svc.Upsert(ctx, domain.UpsertRequest{
		Number:         "+27 82 999 8888",
		Classification: domain.ClassificationLowSpam,
		SpamScore:      45,
		ReportCount:    12,
		Source:         domain.SourceCommunity,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.ClassificationLowSpam, updated.Classification)
	assert.Equal(t, 45, updated.SpamScore)
	require.NotNil(t, updated.LastUpdated)
	assert.Equal(t, env.clock.Now().UTC(), *updated.LastUpdated)

	count, err := env.svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
