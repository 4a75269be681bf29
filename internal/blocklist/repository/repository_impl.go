package repository

import (
	"context"
	"errors"

	"github.com/callshield/callshield/internal/blocklist/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.BlockedNumber) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByNormalized(ctx context.Context, db *gorm.DB, normalized string) (*domain.BlockedNumber, error) {
	var record domain.BlockedNumber
	err := db.WithContext(ctx).
		Where("normalized_number = ?", normalized).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) DeleteByNormalized(ctx context.Context, db *gorm.DB, normalized string) error {
	return db.WithContext(ctx).
		Where("normalized_number = ?", normalized).
		Delete(&domain.BlockedNumber{}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.BlockedNumber, error) {
	var records []*domain.BlockedNumber
	err := db.WithContext(ctx).
		Model(&domain.BlockedNumber{}).
		Order("blocked_at desc, id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.BlockedNumber{}).Error
}

func (r *repo) DeleteAutoBlocked(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("auto_blocked = ?", true).
		Delete(&domain.BlockedNumber{}).Error
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, autoBlocked *bool) (int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.BlockedNumber{})
	if autoBlocked != nil {
		stmt = stmt.Where("auto_blocked = ?", *autoBlocked)
	}
	var count int64
	err := stmt.Count(&count).Error
	return count, err
}
