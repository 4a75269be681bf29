package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/callhistory/domain"
	"github.com/callshield/callshield/internal/callhistory/repository"
	"github.com/callshield/callshield/internal/clock"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, fake *clock.FakeClock) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CallRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})
}

func TestRecordStampsClockAndNormalizes(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	svc := newTestService(t, clock.NewFakeClock(now))

	record, err := svc.Record(context.Background(), domain.RecordRequest{
		PhoneNumber: "+27 82 123 4567",
		Direction:   domain.DirectionIncoming,
		Duration:    120,
	})
	require.NoError(t, err)

	assert.Equal(t, "0821234567", record.NormalizedNumber)
	assert.Equal(t, now, record.Timestamp)
	assert.Equal(t, phonedomain.ClassificationUnknown, record.Classification)
	assert.False(t, record.Blocked)
}

func TestRecordValidation(t *testing.T) {
	svc := newTestService(t, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.RecordRequest{Direction: domain.DirectionIncoming})
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)

	_, err = svc.Record(ctx, domain.RecordRequest{PhoneNumber: "0821234567", Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = svc.Record(ctx, domain.RecordRequest{PhoneNumber: "0821234567", Direction: domain.DirectionMissed, Duration: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestRecentOrderingAndLimit(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)
	ctx := context.Background()

	numbers := []string{"0821234567", "0112345678", "0119990000"}
	for _, number := range numbers {
		_, err := svc.Record(ctx, domain.RecordRequest{
			PhoneNumber: number,
			Direction:   domain.DirectionIncoming,
		})
		require.NoError(t, err)
		fake.Advance(time.Hour)
	}

	records, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0119990000", records[0].NormalizedNumber)
	assert.Equal(t, "0112345678", records[1].NormalizedNumber)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))
}

func TestMissedAndSpamViews(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.RecordRequest{
		PhoneNumber:    "0823334444",
		Direction:      domain.DirectionIncoming,
		Classification: phonedomain.ClassificationContact,
	})
	require.NoError(t, err)
	_, err = svc.Record(ctx, domain.RecordRequest{
		PhoneNumber:    "0112345678",
		Direction:      domain.DirectionMissed,
		Classification: phonedomain.ClassificationHighSpam,
		SpamScore:      92,
	})
	require.NoError(t, err)
	_, err = svc.Record(ctx, domain.RecordRequest{
		PhoneNumber:    "0215556789",
		Direction:      domain.DirectionOutgoing,
		Classification: phonedomain.ClassificationLowSpam,
		SpamScore:      45,
	})
	require.NoError(t, err)

	missed, err := svc.Missed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, missed, 1)
	assert.Equal(t, "0112345678", missed[0].NormalizedNumber)

	spam, err := svc.Spam(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, spam, 2)
}

func TestSetFeedbackUpdatesLatestCall(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)
	ctx := context.Background()

	first, err := svc.Record(ctx, domain.RecordRequest{
		PhoneNumber: "0821234567",
		Direction:   domain.DirectionIncoming,
	})
	require.NoError(t, err)
	fake.Advance(time.Hour)
	second, err := svc.Record(ctx, domain.RecordRequest{
		PhoneNumber: "+27 82 123 4567",
		Direction:   domain.DirectionMissed,
	})
	require.NoError(t, err)

	updated, err := svc.SetFeedback(ctx, "0821234567", domain.FeedbackSpam)
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.ID)
	assert.Equal(t, domain.FeedbackSpam, updated.UserFeedback)

	records, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.FeedbackSpam, records[0].UserFeedback)
	assert.Equal(t, first.ID, records[1].ID)
	assert.Empty(t, records[1].UserFeedback)
}

func TestSetFeedbackErrors(t *testing.T) {
	svc := newTestService(t, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	_, err := svc.SetFeedback(ctx, "0821234567", "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidFeedback)

	_, err = svc.SetFeedback(ctx, "0821234567", domain.FeedbackSafe)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodayStatsCountsSinceLocalMidnight(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)
	ctx := context.Background()

	// yesterday
	_, err := svc.Record(ctx, domain.RecordRequest{
		PhoneNumber: "0119990000",
		Direction:   domain.DirectionMissed,
		Timestamp:   time.Date(2025, 6, 9, 23, 0, 0, 0, time.UTC),
		Blocked:     true,
	})
	require.NoError(t, err)

	// today
	fake.Advance(9 * time.Hour)
	_, err = svc.Record(ctx, domain.RecordRequest{
		PhoneNumber: "0112345678",
		Direction:   domain.DirectionMissed,
		Blocked:     true,
	})
	require.NoError(t, err)
	_, err = svc.Record(ctx, domain.RecordRequest{
		PhoneNumber: "0823334444",
		Direction:   domain.DirectionIncoming,
	})
	require.NoError(t, err)

	stats, err := svc.TodayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TodayCalls)
	assert.Equal(t, int64(1), stats.BlockedToday)
}
