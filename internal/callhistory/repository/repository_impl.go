package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/callhistory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.CallRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) Recent(ctx context.Context, db *gorm.DB, limit int) ([]*domain.CallRecord, error) {
	var records []*domain.CallRecord
	stmt := db.WithContext(ctx).
		Model(&domain.CallRecord{}).
		Order("timestamp desc, id desc")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) FindLatestByNormalized(ctx context.Context, db *gorm.DB, normalized string) (*domain.CallRecord, error) {
	var record domain.CallRecord
	err := db.WithContext(ctx).
		Where("normalized_number = ?", normalized).
		Order("timestamp desc, id desc").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) UpdateFeedback(ctx context.Context, db *gorm.DB, id snowflake.ID, feedback domain.Feedback) error {
	return db.WithContext(ctx).
		Model(&domain.CallRecord{}).
		Where("id = ?", id).
		Update("user_feedback", feedback).Error
}

func (r *repo) CountSince(ctx context.Context, db *gorm.DB, since time.Time, blockedOnly bool) (int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.CallRecord{}).
		Where("timestamp >= ?", since)
	if blockedOnly {
		stmt = stmt.Where("blocked = ?", true)
	}
	var count int64
	err := stmt.Count(&count).Error
	return count, err
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.CallRecord{}).Count(&count).Error
	return count, err
}
