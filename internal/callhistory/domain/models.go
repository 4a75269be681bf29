package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
)

// Direction of a call event.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionMissed   Direction = "missed"
)

// Valid reports whether the direction is one of the known values.
func (d Direction) Valid() bool {
	switch d {
	case DirectionIncoming, DirectionOutgoing, DirectionMissed:
		return true
	default:
		return false
	}
}

// Feedback is the user's post-call verdict.
type Feedback string

const (
	FeedbackSafe Feedback = "safe"
	FeedbackSpam Feedback = "spam"
)

// CallRecord is one append-only call log entry. Classification,
// spam score and caller name are snapshots taken at call time and are
// never refreshed when the intelligence record changes later. The only
// mutation permitted after creation is setting UserFeedback.
type CallRecord struct {
	ID               snowflake.ID               `gorm:"primaryKey" json:"id"`
	PhoneNumber      string                     `gorm:"not null;index" json:"phone_number"`
	NormalizedNumber string                     `gorm:"not null;index" json:"normalized_number"`
	CallerName       string                     `json:"caller_name,omitempty"`
	Direction        Direction                  `gorm:"not null;index" json:"direction"`
	Timestamp        time.Time                  `gorm:"not null;index" json:"timestamp"`
	Duration         int                        `gorm:"not null;default:0" json:"duration,omitempty"`
	Classification   phonedomain.Classification `gorm:"not null;index" json:"classification"`
	SpamScore        int                        `gorm:"not null;default:0" json:"spam_score"`
	UserFeedback     Feedback                   `json:"user_feedback,omitempty"`
	Blocked          bool                       `gorm:"not null" json:"blocked"`
	Notes            string                     `json:"notes,omitempty"`
}

func (CallRecord) TableName() string {
	return "call_history"
}

// Stats summarizes today's activity over the call log.
type Stats struct {
	TodayCalls   int64 `json:"today_calls"`
	BlockedToday int64 `json:"blocked_today"`
}
