package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.UserSettings, error) {
	settings, err := s.repo.First(ctx, s.db)
	if err != nil {
		return domain.UserSettings{}, err
	}
	if settings != nil {
		return *settings, nil
	}

	created := domain.Defaults()
	created.ID = s.genID.Generate()
	if err := s.repo.Insert(ctx, s.db, &created); err != nil {
		return domain.UserSettings{}, err
	}

	s.log.Info("settings initialized with defaults", zap.Int64("id", created.ID.Int64()))
	return created, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.UserSettings, error) {
	if err := validate(req); err != nil {
		return domain.UserSettings{}, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return domain.UserSettings{}, err
	}

	apply(&settings, req)
	if err := s.repo.Update(ctx, s.db, &settings); err != nil {
		return domain.UserSettings{}, err
	}

	s.log.Debug("settings updated",
		zap.Bool("auto_block_spam", settings.AutoBlockSpam),
		zap.Int("auto_block_threshold", settings.AutoBlockThreshold),
	)
	return settings, nil
}

func (s *Service) Reset(ctx context.Context) (domain.UserSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.UserSettings{}, err
	}

	defaults := domain.Defaults()
	defaults.ID = settings.ID
	if err := s.repo.Update(ctx, s.db, &defaults); err != nil {
		return domain.UserSettings{}, err
	}

	s.log.Info("settings reset to defaults")
	return defaults, nil
}

func validate(req domain.UpdateRequest) error {
	if req.AutoBlockThreshold != nil && (*req.AutoBlockThreshold < 0 || *req.AutoBlockThreshold > 100) {
		return domain.ErrInvalidThreshold
	}
	if req.DarkMode != nil && !req.DarkMode.Valid() {
		return domain.ErrInvalidDarkMode
	}
	if req.Language != nil && strings.TrimSpace(*req.Language) == "" {
		return domain.ErrInvalidLanguage
	}
	return nil
}

func apply(settings *domain.UserSettings, req domain.UpdateRequest) {
	if req.AutoBlockSpam != nil {
		settings.AutoBlockSpam = *req.AutoBlockSpam
	}
	if req.AutoBlockThreshold != nil {
		settings.AutoBlockThreshold = *req.AutoBlockThreshold
	}
	if req.ShowCallOverlay != nil {
		settings.ShowCallOverlay = *req.ShowCallOverlay
	}
	if req.PostCallPrompt != nil {
		settings.PostCallPrompt = *req.PostCallPrompt
	}
	if req.WifiOnlySync != nil {
		settings.WifiOnlySync = *req.WifiOnlySync
	}
	if req.EnableNotifications != nil {
		settings.EnableNotifications = *req.EnableNotifications
	}
	if req.DarkMode != nil {
		settings.DarkMode = *req.DarkMode
	}
	if req.Language != nil {
		settings.Language = strings.TrimSpace(*req.Language)
	}
	if req.LastSyncAt != nil {
		settings.LastSyncAt = req.LastSyncAt
	}
}
