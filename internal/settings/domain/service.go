package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidThreshold = errors.New("invalid_auto_block_threshold")
	ErrInvalidDarkMode  = errors.New("invalid_dark_mode")
	ErrInvalidLanguage  = errors.New("invalid_language")
)

// UpdateRequest is a fixed-shape partial update: nil fields are left
// untouched. Unknown keys are rejected at the transport boundary.
type UpdateRequest struct {
	AutoBlockSpam       *bool      `json:"auto_block_spam"`
	AutoBlockThreshold  *int       `json:"auto_block_threshold"`
	ShowCallOverlay     *bool      `json:"show_call_overlay"`
	PostCallPrompt      *bool      `json:"post_call_prompt"`
	WifiOnlySync        *bool      `json:"wifi_only_sync"`
	EnableNotifications *bool      `json:"enable_notifications"`
	DarkMode            *DarkMode  `json:"dark_mode"`
	Language            *string    `json:"language"`
	LastSyncAt          *time.Time `json:"last_sync_at"`
}

type Service interface {
	// Get reads the settings row, creating it with defaults on first use.
	Get(ctx context.Context) (UserSettings, error)
	// Update overlays the set fields onto the stored row and writes it
	// back to the same row.
	Update(ctx context.Context, req UpdateRequest) (UserSettings, error)
	// Reset restores the defaults, preserving the row identity.
	Reset(ctx context.Context) (UserSettings, error)
}
