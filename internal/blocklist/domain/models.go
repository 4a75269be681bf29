package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BlockedNumber is a standing decision to suppress a number. The
// normalized number is unique: blocking an already-blocked number is a
// no-op returning the existing record.
type BlockedNumber struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	PhoneNumber      string       `gorm:"not null;index" json:"phone_number"`
	NormalizedNumber string       `gorm:"not null;uniqueIndex" json:"normalized_number"`
	Name             string       `json:"name,omitempty"`
	BlockedAt        time.Time    `gorm:"not null;index" json:"blocked_at"`
	Reason           string       `json:"reason,omitempty"`
	AutoBlocked      bool         `gorm:"not null" json:"auto_blocked"`
}

func (BlockedNumber) TableName() string {
	return "blocked_numbers"
}

// Counts summarizes the block list by provenance.
type Counts struct {
	Total  int64 `json:"total"`
	Auto   int64 `json:"auto"`
	Manual int64 `json:"manual"`
}
