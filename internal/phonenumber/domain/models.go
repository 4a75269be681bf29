package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Classification is the authoritative caller-ID label for a number.
type Classification string

const (
	ClassificationVerified Classification = "verified"
	ClassificationContact  Classification = "contact"
	ClassificationSafe     Classification = "safe"
	ClassificationUnknown  Classification = "unknown"
	ClassificationLowSpam  Classification = "low_spam"
	ClassificationHighSpam Classification = "high_spam"
	ClassificationBlocked  Classification = "blocked"
)

// Valid reports whether the classification is one of the known labels.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationVerified, ClassificationContact, ClassificationSafe,
		ClassificationUnknown, ClassificationLowSpam, ClassificationHighSpam,
		ClassificationBlocked:
		return true
	default:
		return false
	}
}

// IsSpam reports whether the classification marks an unwanted caller.
func (c Classification) IsSpam() bool {
	return c == ClassificationLowSpam || c == ClassificationHighSpam
}

// Category describes the kind of caller behind a number.
type Category string

const (
	CategoryBusiness      Category = "business"
	CategoryBank          Category = "bank"
	CategoryGovernment    Category = "government"
	CategoryDelivery      Category = "delivery"
	CategoryHealthcare    Category = "healthcare"
	CategoryTelecoms      Category = "telecoms"
	CategoryTelemarketer  Category = "telemarketer"
	CategoryDebtCollector Category = "debt_collector"
	CategoryScam          Category = "scam"
	CategoryPersonal      Category = "personal"
	CategoryUnknown       Category = "unknown"
)

// Source records the provenance of an intelligence record.
type Source string

const (
	SourceDatabase  Source = "database"
	SourceCommunity Source = "community"
	SourceUser      Source = "user"
)

// PhoneNumber is one entry in the offline intelligence table. The
// normalized number is the uniqueness boundary; the raw number is kept
// as first seen for display and legacy lookups.
type PhoneNumber struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	Number           string            `gorm:"not null;index" json:"number"`
	NormalizedNumber string            `gorm:"not null;uniqueIndex" json:"normalized_number"`
	Name             string            `json:"name,omitempty"`
	Category         Category          `gorm:"not null;index" json:"category"`
	SpamScore        int               `gorm:"not null;index" json:"spam_score"`
	Classification   Classification    `gorm:"not null;index" json:"classification"`
	ReportCount      int               `gorm:"not null" json:"report_count"`
	VerifiedBusiness bool              `gorm:"not null" json:"verified_business"`
	LastReported     *time.Time        `json:"last_reported,omitempty"`
	LastUpdated      *time.Time        `json:"last_updated,omitempty"`
	Source           Source            `json:"source,omitempty"`
	Metadata         datatypes.JSONMap `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
}

func (PhoneNumber) TableName() string {
	return "phone_numbers"
}
