package repository

import (
	"context"
	"errors"

	"github.com/callshield/callshield/internal/settings/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) First(ctx context.Context, db *gorm.DB) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	if err := db.WithContext(ctx).
		Order("id asc").
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, settings *domain.UserSettings) error {
	return db.WithContext(ctx).Create(settings).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, settings *domain.UserSettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
