package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/blocklist/domain"
	"github.com/callshield/callshield/internal/clock"
	"github.com/callshield/callshield/pkg/db"
	"github.com/callshield/callshield/pkg/phone"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("blocklist.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Block(ctx context.Context, req domain.BlockRequest) (domain.BlockedNumber, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return domain.BlockedNumber{}, domain.ErrInvalidNumber
	}
	normalized := phone.Normalize(number)

	existing, err := s.repo.FindByNormalized(ctx, s.db, normalized)
	if err != nil {
		return domain.BlockedNumber{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	record := domain.BlockedNumber{
		ID:               s.genID.Generate(),
		PhoneNumber:      number,
		NormalizedNumber: normalized,
		Name:             strings.TrimSpace(req.Name),
		BlockedAt:        s.clock.Now().UTC(),
		Reason:           strings.TrimSpace(req.Reason),
		AutoBlocked:      req.AutoBlocked,
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		// The unique index on normalized_number closes the
		// check-then-insert race: a concurrent block wins and we
		// return its record instead.
		if db.IsDuplicateKeyErr(err) {
			winner, findErr := s.repo.FindByNormalized(ctx, s.db, normalized)
			if findErr != nil {
				return domain.BlockedNumber{}, findErr
			}
			if winner != nil {
				return *winner, nil
			}
		}
		return domain.BlockedNumber{}, err
	}

	s.log.Info("number blocked",
		zap.String("normalized_number", normalized),
		zap.Bool("auto_blocked", record.AutoBlocked),
	)
	return record, nil
}

func (s *Service) Unblock(ctx context.Context, number string) error {
	normalized := phone.Normalize(number)
	if err := s.repo.DeleteByNormalized(ctx, s.db, normalized); err != nil {
		return err
	}
	s.log.Info("number unblocked", zap.String("normalized_number", normalized))
	return nil
}

func (s *Service) IsBlocked(ctx context.Context, number string) (bool, error) {
	record, err := s.repo.FindByNormalized(ctx, s.db, phone.Normalize(number))
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

func (s *Service) List(ctx context.Context) ([]domain.BlockedNumber, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	records := make([]domain.BlockedNumber, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, *item)
	}
	return records, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.BlockedNumber, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return records, nil
	}

	normalized := phone.Normalize(query)
	lowerQuery := strings.ToLower(query)

	matches := make([]domain.BlockedNumber, 0, len(records))
	for _, record := range records {
		matchesNumber := (normalized != "" && strings.Contains(record.NormalizedNumber, normalized)) ||
			strings.Contains(record.PhoneNumber, query)
		matchesName := record.Name != "" && strings.Contains(strings.ToLower(record.Name), lowerQuery)
		if matchesNumber || matchesName {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, s.db); err != nil {
		return err
	}
	s.log.Info("block list cleared")
	return nil
}

func (s *Service) ClearAutoBlocked(ctx context.Context) error {
	if err := s.repo.DeleteAutoBlocked(ctx, s.db); err != nil {
		return err
	}
	s.log.Info("auto-blocked numbers cleared")
	return nil
}

func (s *Service) Counts(ctx context.Context) (domain.Counts, error) {
	total, err := s.repo.Count(ctx, s.db, nil)
	if err != nil {
		return domain.Counts{}, err
	}
	auto := true
	autoCount, err := s.repo.Count(ctx, s.db, &auto)
	if err != nil {
		return domain.Counts{}, err
	}
	return domain.Counts{
		Total:  total,
		Auto:   autoCount,
		Manual: total - autoCount,
	}, nil
}
