package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/callhistory/domain"
	"github.com/callshield/callshield/internal/clock"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	"github.com/callshield/callshield/pkg/phone"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultRecentLimit bounds the loaded call history window.
const DefaultRecentLimit = 100

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("callhistory.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) (domain.CallRecord, error) {
	number := strings.TrimSpace(req.PhoneNumber)
	if number == "" {
		return domain.CallRecord{}, domain.ErrInvalidNumber
	}
	if !req.Direction.Valid() {
		return domain.CallRecord{}, domain.ErrInvalidDirection
	}
	if req.Duration < 0 {
		return domain.CallRecord{}, domain.ErrInvalidDuration
	}

	classification := req.Classification
	if classification == "" {
		classification = phonedomain.ClassificationUnknown
	}

	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = s.clock.Now()
	}

	record := domain.CallRecord{
		ID:               s.genID.Generate(),
		PhoneNumber:      number,
		NormalizedNumber: phone.Normalize(number),
		CallerName:       strings.TrimSpace(req.CallerName),
		Direction:        req.Direction,
		Timestamp:        timestamp,
		Duration:         req.Duration,
		Classification:   classification,
		SpamScore:        req.SpamScore,
		Blocked:          req.Blocked,
		Notes:            req.Notes,
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.CallRecord{}, err
	}

	s.log.Debug("call recorded",
		zap.String("normalized_number", record.NormalizedNumber),
		zap.String("direction", string(record.Direction)),
		zap.Bool("blocked", record.Blocked),
	)
	return record, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.CallRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	items, err := s.repo.Recent(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CallRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, *item)
	}
	return records, nil
}

func (s *Service) Missed(ctx context.Context, limit int) ([]domain.CallRecord, error) {
	records, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	missed := make([]domain.CallRecord, 0, len(records))
	for _, record := range records {
		if record.Direction == domain.DirectionMissed {
			missed = append(missed, record)
		}
	}
	return missed, nil
}

func (s *Service) Spam(ctx context.Context, limit int) ([]domain.CallRecord, error) {
	records, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	spam := make([]domain.CallRecord, 0, len(records))
	for _, record := range records {
		if record.Classification.IsSpam() {
			spam = append(spam, record)
		}
	}
	return spam, nil
}

func (s *Service) SetFeedback(ctx context.Context, number string, feedback domain.Feedback) (domain.CallRecord, error) {
	if feedback != domain.FeedbackSafe && feedback != domain.FeedbackSpam {
		return domain.CallRecord{}, domain.ErrInvalidFeedback
	}

	normalized := phone.Normalize(number)
	record, err := s.repo.FindLatestByNormalized(ctx, s.db, normalized)
	if err != nil {
		return domain.CallRecord{}, err
	}
	if record == nil {
		return domain.CallRecord{}, domain.ErrNotFound
	}

	if err := s.repo.UpdateFeedback(ctx, s.db, record.ID, feedback); err != nil {
		return domain.CallRecord{}, err
	}
	record.UserFeedback = feedback

	s.log.Info("call feedback saved",
		zap.String("normalized_number", normalized),
		zap.String("feedback", string(feedback)),
	)
	return *record, nil
}

func (s *Service) TodayStats(ctx context.Context) (domain.Stats, error) {
	midnight := clock.StartOfDay(s.clock.Now())

	total, err := s.repo.CountSince(ctx, s.db, midnight, false)
	if err != nil {
		return domain.Stats{}, err
	}
	blocked, err := s.repo.CountSince(ctx, s.db, midnight, true)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{TodayCalls: total, BlockedToday: blocked}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db)
}
