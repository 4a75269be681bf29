package domain

import (
	"context"
	"errors"
	"time"

	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
)

var (
	ErrInvalidNumber    = errors.New("invalid_number")
	ErrInvalidDirection = errors.New("invalid_direction")
	ErrInvalidDuration  = errors.New("invalid_duration")
	ErrInvalidFeedback  = errors.New("invalid_feedback")
	ErrNotFound         = errors.New("call_not_found")
)

// RecordRequest captures one call event as reported by the platform.
type RecordRequest struct {
	PhoneNumber    string
	CallerName     string
	Direction      Direction
	Timestamp      time.Time
	Duration       int
	Classification phonedomain.Classification
	SpamScore      int
	Blocked        bool
	Notes          string
}

type Service interface {
	// Record appends one immutable call log entry.
	Record(ctx context.Context, req RecordRequest) (CallRecord, error)
	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]CallRecord, error)
	// Missed filters the recent window down to missed calls.
	Missed(ctx context.Context, limit int) ([]CallRecord, error)
	// Spam filters the recent window down to spam-classified calls.
	Spam(ctx context.Context, limit int) ([]CallRecord, error)
	// SetFeedback records the user's verdict on the most recent call
	// from the number. Last write wins.
	SetFeedback(ctx context.Context, number string, feedback Feedback) (CallRecord, error)
	// TodayStats counts calls and blocked calls since local midnight.
	TodayStats(ctx context.Context) (Stats, error)
	Count(ctx context.Context) (int64, error)
}
