package service

import (
	"context"
	"sync"

	blocklistdomain "github.com/callshield/callshield/internal/blocklist/domain"
	callhistorydomain "github.com/callshield/callshield/internal/callhistory/domain"
	callhistoryservice "github.com/callshield/callshield/internal/callhistory/service"
	"github.com/callshield/callshield/internal/clock"
	"github.com/callshield/callshield/internal/observability/metrics"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	"github.com/callshield/callshield/internal/resolution/domain"
	"github.com/callshield/callshield/internal/resolution/events"
	settingsdomain "github.com/callshield/callshield/internal/settings/domain"
	"github.com/callshield/callshield/pkg/phone"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	Clock        clock.Clock
	Metrics      *metrics.Metrics `optional:"true"`
	Hub          *events.Hub
	PhoneNumbers phonedomain.Service
	CallHistory  callhistorydomain.Service
	BlockList    blocklistdomain.Service
}

type Service struct {
	log          *zap.Logger
	clock        clock.Clock
	metrics      *metrics.Metrics
	hub          *events.Hub
	phoneNumbers phonedomain.Service
	callHistory  callhistorydomain.Service
	blockList    blocklistdomain.Service

	mu          sync.Mutex
	lastLookup  *domain.LookupResult
	recentCalls []callhistorydomain.CallRecord
	recentFresh bool
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("resolution.service"),
		clock:        p.Clock,
		metrics:      p.Metrics,
		hub:          p.Hub,
		phoneNumbers: p.PhoneNumbers,
		callHistory:  p.CallHistory,
		blockList:    p.BlockList,
	}
}

func (s *Service) LookupPhoneNumber(ctx context.Context, raw string) (domain.LookupResult, error) {
	record, err := s.phoneNumbers.Lookup(ctx, raw)
	if err != nil {
		return domain.LookupResult{}, err
	}

	result := domain.LookupResult{
		PhoneNumber:      phone.Format(raw),
		NormalizedNumber: phone.Normalize(raw),
		Found:            record != nil,
		Category:         phonedomain.CategoryUnknown,
		Classification:   phonedomain.ClassificationUnknown,
		Source:           domain.SourceOffline,
		ResolvedAt:       s.clock.Now(),
	}
	if record != nil {
		result.Name = record.Name
		result.Category = record.Category
		result.SpamScore = record.SpamScore
		result.Classification = record.Classification
		result.ReportCount = record.ReportCount
		result.VerifiedBusiness = record.VerifiedBusiness
		result.LastReported = record.LastReported
	}

	s.mu.Lock()
	cached := result
	s.lastLookup = &cached
	s.mu.Unlock()

	s.metrics.RecordLookup(ctx, result.Found, string(result.Classification))
	s.log.Debug("number resolved",
		zap.String("normalized_number", result.NormalizedNumber),
		zap.Bool("found", result.Found),
		zap.String("classification", string(result.Classification)),
	)
	return result, nil
}

func (s *Service) LastLookup() *domain.LookupResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastLookup == nil {
		return nil
	}
	copied := *s.lastLookup
	return &copied
}

func (s *Service) ClearLastLookup() {
	s.mu.Lock()
	s.lastLookup = nil
	s.mu.Unlock()
}

func (s *Service) ShouldAutoBlock(result domain.LookupResult, settings settingsdomain.UserSettings) bool {
	return settings.AutoBlockSpam && result.SpamScore >= settings.AutoBlockThreshold
}

func (s *Service) RecordCall(ctx context.Context, req domain.RecordCallRequest) (callhistorydomain.CallRecord, error) {
	record, err := s.callHistory.Record(ctx, callhistorydomain.RecordRequest{
		PhoneNumber:    req.PhoneNumber,
		CallerName:     req.CallerName,
		Direction:      req.Direction,
		Classification: req.Classification,
		SpamScore:      req.SpamScore,
		Duration:       req.Duration,
		Blocked:        false,
		Notes:          req.Notes,
	})
	if err != nil {
		return callhistorydomain.CallRecord{}, err
	}

	if err := s.refreshRecent(ctx); err != nil {
		return callhistorydomain.CallRecord{}, err
	}

	s.metrics.RecordCall(ctx, string(record.Direction))
	s.hub.Publish(events.ChangeEvent{
		Store:      events.StoreCallHistory,
		Action:     events.ActionRecorded,
		Number:     record.NormalizedNumber,
		OccurredAt: s.clock.Now(),
	})
	return record, nil
}

// RecentCalls returns the full loaded window (up to DefaultRecentLimit
// entries, newest first). Callers wanting a shorter view, such as the
// 20-entry home screen list, slice it or query with an explicit limit.
func (s *Service) RecentCalls(ctx context.Context) ([]callhistorydomain.CallRecord, error) {
	s.mu.Lock()
	if s.recentFresh {
		snapshot := append([]callhistorydomain.CallRecord(nil), s.recentCalls...)
		s.mu.Unlock()
		return snapshot, nil
	}
	s.mu.Unlock()

	if err := s.refreshRecent(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	snapshot := append([]callhistorydomain.CallRecord(nil), s.recentCalls...)
	s.mu.Unlock()
	return snapshot, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, number string, isSafe bool) (callhistorydomain.CallRecord, error) {
	feedback := callhistorydomain.FeedbackSpam
	if isSafe {
		feedback = callhistorydomain.FeedbackSafe
	}

	record, err := s.callHistory.SetFeedback(ctx, number, feedback)
	if err != nil {
		return callhistorydomain.CallRecord{}, err
	}

	if err := s.refreshRecent(ctx); err != nil {
		return callhistorydomain.CallRecord{}, err
	}

	s.metrics.RecordFeedback(ctx, string(feedback))
	s.hub.Publish(events.ChangeEvent{
		Store:      events.StoreCallHistory,
		Action:     events.ActionFeedback,
		Number:     record.NormalizedNumber,
		OccurredAt: s.clock.Now(),
	})
	return record, nil
}

func (s *Service) Stats(ctx context.Context) (domain.StoreCounts, error) {
	phoneNumbers, err := s.phoneNumbers.Count(ctx)
	if err != nil {
		return domain.StoreCounts{}, err
	}
	calls, err := s.callHistory.Count(ctx)
	if err != nil {
		return domain.StoreCounts{}, err
	}
	counts, err := s.blockList.Counts(ctx)
	if err != nil {
		return domain.StoreCounts{}, err
	}
	return domain.StoreCounts{
		PhoneNumbers:   phoneNumbers,
		CallHistory:    calls,
		BlockedNumbers: counts.Total,
	}, nil
}

func (s *Service) refreshRecent(ctx context.Context) error {
	records, err := s.callHistory.Recent(ctx, callhistoryservice.DefaultRecentLimit)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.recentCalls = records
	s.recentFresh = true
	s.mu.Unlock()
	return nil
}
