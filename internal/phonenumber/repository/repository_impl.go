package repository

import (
	"context"
	"errors"

	"github.com/callshield/callshield/internal/phonenumber/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.PhoneNumber) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.PhoneNumber) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *repo) FindByNormalized(ctx context.Context, db *gorm.DB, normalized string) (*domain.PhoneNumber, error) {
	var record domain.PhoneNumber
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

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.PhoneNumber, error) {
	var record domain.PhoneNumber
	err := db.WithContext(ctx).
		Where("number = ?", number).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.PhoneNumber{}).Count(&count).Error
	return count, err
}
