package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	blocklistdomain "github.com/callshield/callshield/internal/blocklist/domain"
	blocklistrepo "github.com/callshield/callshield/internal/blocklist/repository"
	blocklistservice "github.com/callshield/callshield/internal/blocklist/service"
	callhistorydomain "github.com/callshield/callshield/internal/callhistory/domain"
	callhistoryrepo "github.com/callshield/callshield/internal/callhistory/repository"
	callhistoryservice "github.com/callshield/callshield/internal/callhistory/service"
	"github.com/callshield/callshield/internal/clock"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	phonenumberrepo "github.com/callshield/callshield/internal/phonenumber/repository"
	phonenumberservice "github.com/callshield/callshield/internal/phonenumber/service"
	"github.com/callshield/callshield/internal/resolution/domain"
	"github.com/callshield/callshield/internal/resolution/events"
	settingsdomain "github.com/callshield/callshield/internal/settings/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc          domain.Service
	phoneNumbers phonedomain.Service
	blockList    blocklistdomain.Service
	callHistory  callhistorydomain.Service
	hub          *events.Hub
	clock        *clock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&phonedomain.PhoneNumber{},
		&callhistorydomain.CallRecord{},
		&blocklistdomain.BlockedNumber{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fake := clock.NewFakeClock(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	hub := events.NewHub()

	phoneNumbers := phonenumberservice.New(phonenumberservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fake,
		Repo:  phonenumberrepo.Provide(),
	})
	blockList := blocklistservice.New(blocklistservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fake,
		Repo:  blocklistrepo.Provide(),
	})
	callHistory := callhistoryservice.New(callhistoryservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fake,
		Repo:  callhistoryrepo.Provide(),
	})

	svc := New(Params{
		Log:          log,
		Clock:        fake,
		Hub:          hub,
		PhoneNumbers: phoneNumbers,
		CallHistory:  callHistory,
		BlockList:    blockList,
	})

	return &testEnv{
		svc:          svc,
		phoneNumbers: phoneNumbers,
		blockList:    blockList,
		callHistory:  callHistory,
		hub:          hub,
		clock:        fake,
	}
}

func TestLookupHitCarriesIntelligenceSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.phoneNumbers.Upsert(ctx, phonedomain.UpsertRequest{
		Number:         "0112345678",
		Classification: phonedomain.ClassificationHighSpam,
		Category:       phonedomain.CategoryTelemarketer,
		SpamScore:      92,
		ReportCount:    847,
	})
	require.NoError(t, err)

	result, err := env.svc.LookupPhoneNumber(ctx, "+27 11 234 5678")
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, "011 234 5678", result.PhoneNumber)
	assert.Equal(t, "0112345678", result.NormalizedNumber)
	assert.Equal(t, phonedomain.ClassificationHighSpam, result.Classification)
	assert.Equal(t, 92, result.SpamScore)
	assert.Equal(t, 847, result.ReportCount)
	assert.Equal(t, domain.SourceOffline, result.Source)
}

func TestLookupMissBuildsUnknownResult(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.LookupPhoneNumber(context.Background(), "0860000000")
	require.NoError(t, err)

	assert.False(t, result.Found)
	assert.Equal(t, "086 000 0000", result.PhoneNumber)
	assert.Equal(t, phonedomain.ClassificationUnknown, result.Classification)
	assert.Equal(t, phonedomain.CategoryUnknown, result.Category)
	assert.Equal(t, 0, result.SpamScore)
	assert.Equal(t, 0, result.ReportCount)
	assert.False(t, result.VerifiedBusiness)
	assert.Equal(t, domain.SourceOffline, result.Source)
}

func TestLookupKeepsShortInputDisplayUnchanged(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.LookupPhoneNumber(context.Background(), "10111")
	require.NoError(t, err)
	assert.Equal(t, "10111", result.PhoneNumber)
}

func TestLastLookupSingleSlotCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Nil(t, env.svc.LastLookup())

	_, err := env.svc.LookupPhoneNumber(ctx, "0821234567")
	require.NoError(t, err)
	_, err = env.svc.LookupPhoneNumber(ctx, "0119990000")
	require.NoError(t, err)

	cached := env.svc.LastLookup()
	require.NotNil(t, cached)
	assert.Equal(t, "0119990000", cached.NormalizedNumber)

	env.svc.ClearLastLookup()
	assert.Nil(t, env.svc.LastLookup())
}

func TestShouldAutoBlockPredicate(t *testing.T) {
	env := newTestEnv(t)

	result := domain.LookupResult{SpamScore: 92, Classification: phonedomain.ClassificationHighSpam}

	settings := settingsdomain.Defaults()
	assert.False(t, env.svc.ShouldAutoBlock(result, settings), "master switch off")

	settings.AutoBlockSpam = true
	assert.True(t, env.svc.ShouldAutoBlock(result, settings), "score 92 over threshold 80")

	settings.AutoBlockThreshold = 95
	assert.False(t, env.svc.ShouldAutoBlock(result, settings), "score below raised threshold")

	assert.True(t, env.svc.ShouldAutoBlock(domain.LookupResult{SpamScore: 95}, settings), "boundary is inclusive")
}

func TestAutoBlockScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.phoneNumbers.Upsert(ctx, phonedomain.UpsertRequest{
		Number:         "0112345678",
		Classification: phonedomain.ClassificationHighSpam,
		SpamScore:      92,
	})
	require.NoError(t, err)

	result, err := env.svc.LookupPhoneNumber(ctx, "0112345678")
	require.NoError(t, err)

	settings := settingsdomain.Defaults()
	settings.AutoBlockSpam = true
	require.True(t, env.svc.ShouldAutoBlock(result, settings))

	record, err := env.blockList.Block(ctx, blocklistdomain.BlockRequest{
		Number:      result.NormalizedNumber,
		Reason:      "spam score over threshold",
		AutoBlocked: true,
	})
	require.NoError(t, err)
	assert.True(t, record.AutoBlocked)

	blocked, err := env.blockList.IsBlocked(ctx, "0112345678")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestRecordCallRefreshesViewAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	subscription, backlog := env.hub.Subscribe()
	defer subscription.Close()
	require.Empty(t, backlog)

	record, err := env.svc.RecordCall(ctx, domain.RecordCallRequest{
		PhoneNumber:    "+27 82 123 4567",
		Direction:      callhistorydomain.DirectionIncoming,
		Classification: phonedomain.ClassificationUnknown,
		Duration:       60,
	})
	require.NoError(t, err)
	assert.False(t, record.Blocked)
	assert.Equal(t, env.clock.Now(), record.Timestamp)

	recent, err := env.svc.RecentCalls(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, record.ID, recent[0].ID)

	select {
	case event := <-subscription.Events():
		assert.Equal(t, events.StoreCallHistory, event.Store)
		assert.Equal(t, events.ActionRecorded, event.Action)
		assert.Equal(t, "0821234567", event.Number)
	default:
		t.Fatal("expected a change event")
	}
}

func TestSubmitFeedbackMarksLatestCall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.RecordCall(ctx, domain.RecordCallRequest{
		PhoneNumber: "0821234567",
		Direction:   callhistorydomain.DirectionIncoming,
	})
	require.NoError(t, err)

	updated, err := env.svc.SubmitFeedback(ctx, "+27 82 123 4567", false)
	require.NoError(t, err)
	assert.Equal(t, callhistorydomain.FeedbackSpam, updated.UserFeedback)

	recent, err := env.svc.RecentCalls(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, callhistorydomain.FeedbackSpam, recent[0].UserFeedback)
}

func TestStatsCountsAllStores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.phoneNumbers.Upsert(ctx, phonedomain.UpsertRequest{Number: "0821234567"})
	require.NoError(t, err)
	_, err = env.svc.RecordCall(ctx, domain.RecordCallRequest{
		PhoneNumber: "0821234567",
		Direction:   callhistorydomain.DirectionIncoming,
	})
	require.NoError(t, err)
	_, err = env.blockList.Block(ctx, blocklistdomain.BlockRequest{Number: "0119990000"})
	require.NoError(t, err)

	counts, err := env.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.PhoneNumbers)
	assert.Equal(t, int64(1), counts.CallHistory)
	assert.Equal(t, int64(1), counts.BlockedNumbers)
}

func TestClassificationPresentationMaps(t *testing.T) {
	assert.Equal(t, "success", domain.ClassificationColor(phonedomain.ClassificationVerified))
	assert.Equal(t, "primary", domain.ClassificationColor(phonedomain.ClassificationContact))
	assert.Equal(t, "warning", domain.ClassificationColor(phonedomain.ClassificationLowSpam))
	assert.Equal(t, "danger", domain.ClassificationColor(phonedomain.ClassificationHighSpam))
	assert.Equal(t, "neutral", domain.ClassificationColor("something-else"))

	assert.Equal(t, "Suspected Spam", domain.ClassificationLabel(phonedomain.ClassificationLowSpam))
	assert.Equal(t, "Spam", domain.ClassificationLabel(phonedomain.ClassificationHighSpam))
	assert.Equal(t, "Unknown", domain.ClassificationLabel("something-else"))
}
