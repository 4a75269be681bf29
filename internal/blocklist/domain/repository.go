package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *BlockedNumber) error
	FindByNormalized(ctx context.Context, db *gorm.DB, normalized string) (*BlockedNumber, error)
	DeleteByNormalized(ctx context.Context, db *gorm.DB, normalized string) error
	List(ctx context.Context, db *gorm.DB) ([]*BlockedNumber, error)
	DeleteAll(ctx context.Context, db *gorm.DB) error
	DeleteAutoBlocked(ctx context.Context, db *gorm.DB) error
	Count(ctx context.Context, db *gorm.DB, autoBlocked *bool) (int64, error)
}
