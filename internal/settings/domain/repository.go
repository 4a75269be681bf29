package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// First returns the settings row, or nil when none exists yet.
	First(ctx context.Context, db *gorm.DB) (*UserSettings, error)
	Insert(ctx context.Context, db *gorm.DB, settings *UserSettings) error
	Update(ctx context.Context, db *gorm.DB, settings *UserSettings) error
}
