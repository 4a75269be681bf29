package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *CallRecord) error
	Recent(ctx context.Context, db *gorm.DB, limit int) ([]*CallRecord, error)
	// FindLatestByNormalized returns the most recent entry for a number.
	FindLatestByNormalized(ctx context.Context, db *gorm.DB, normalized string) (*CallRecord, error)
	UpdateFeedback(ctx context.Context, db *gorm.DB, id snowflake.ID, feedback Feedback) error
	CountSince(ctx context.Context, db *gorm.DB, since time.Time, blockedOnly bool) (int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
