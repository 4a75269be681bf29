package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *PhoneNumber) error
	Update(ctx context.Context, db *gorm.DB, record *PhoneNumber) error
	FindByNormalized(ctx context.Context, db *gorm.DB, normalized string) (*PhoneNumber, error)
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*PhoneNumber, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
