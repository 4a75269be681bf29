package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/clock"
	"github.com/callshield/callshield/internal/phonenumber/domain"
	"github.com/callshield/callshield/pkg/phone"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("phonenumber.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Lookup resolves against the normalized key first, then falls back to
// the raw number column for legacy entries stored before normalization.
func (s *Service) Lookup(ctx context.Context, raw string) (*domain.PhoneNumber, error) {
	normalized := phone.Normalize(raw)

	record, err := s.repo.FindByNormalized(ctx, s.db, normalized)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	return s.repo.FindByNumber(ctx, s.db, raw)
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertRequest) (domain.PhoneNumber, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return domain.PhoneNumber{}, domain.ErrInvalidNumber
	}
	if req.SpamScore < 0 || req.SpamScore > 100 {
		return domain.PhoneNumber{}, domain.ErrInvalidSpamScore
	}

	classification := req.Classification
	if classification == "" {
		classification = domain.ClassificationUnknown
	}
	if !classification.Valid() {
		return domain.PhoneNumber{}, domain.ErrInvalidClassification
	}

	category := req.Category
	if category == "" {
		category = domain.CategoryUnknown
	}

	source := req.Source
	if source == "" {
		source = domain.SourceDatabase
	}

	normalized := phone.Normalize(number)
	now := s.clock.Now().UTC()

	existing, err := s.repo.FindByNormalized(ctx, s.db, normalized)
	if err != nil {
		return domain.PhoneNumber{}, err
	}

	if existing != nil {
		existing.Name = req.Name
		existing.Category = category
		existing.SpamScore = req.SpamScore
		existing.Classification = classification
		existing.ReportCount = req.ReportCount
		existing.VerifiedBusiness = req.VerifiedBusiness
		existing.LastReported = req.LastReported
		existing.LastUpdated = &now
		existing.Source = source
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return domain.PhoneNumber{}, err
		}
		return *existing, nil
	}

	record := domain.PhoneNumber{
		ID:               s.genID.Generate(),
		Number:           number,
		NormalizedNumber: normalized,
		Name:             req.Name,
		Category:         category,
		SpamScore:        req.SpamScore,
		Classification:   classification,
		ReportCount:      req.ReportCount,
		VerifiedBusiness: req.VerifiedBusiness,
		LastReported:     req.LastReported,
		LastUpdated:      &now,
		Source:           source,
		Metadata:         datatypes.JSONMap{},
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.PhoneNumber{}, err
	}

	return record, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db)
}
