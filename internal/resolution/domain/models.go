package domain

import (
	"time"

	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
)

// SourceOffline marks results resolved from the bundled local table.
// Networked sources may join it once a sync collaborator exists.
const SourceOffline = "offline"

// LookupResult is the outcome of resolving one raw number. PhoneNumber
// always carries the formatted display form of the input, hit or miss.
type LookupResult struct {
	PhoneNumber      string                     `json:"phone_number"`
	NormalizedNumber string                     `json:"normalized_number"`
	Found            bool                       `json:"found"`
	Name             string                     `json:"name,omitempty"`
	Category         phonedomain.Category       `json:"category"`
	SpamScore        int                        `json:"spam_score"`
	Classification   phonedomain.Classification `json:"classification"`
	ReportCount      int                        `json:"report_count"`
	VerifiedBusiness bool                       `json:"verified_business"`
	LastReported     *time.Time                 `json:"last_reported,omitempty"`
	Source           string                     `json:"source"`
	ResolvedAt       time.Time                  `json:"resolved_at"`
}

// StoreCounts reports the size of each persistent table.
type StoreCounts struct {
	PhoneNumbers   int64 `json:"phone_numbers"`
	CallHistory    int64 `json:"call_history"`
	BlockedNumbers int64 `json:"blocked_numbers"`
}

var classificationColors = map[phonedomain.Classification]string{
	phonedomain.ClassificationVerified: "success",
	phonedomain.ClassificationContact:  "primary",
	phonedomain.ClassificationSafe:     "success",
	phonedomain.ClassificationUnknown:  "neutral",
	phonedomain.ClassificationLowSpam:  "warning",
	phonedomain.ClassificationHighSpam: "danger",
	phonedomain.ClassificationBlocked:  "neutral",
}

var classificationLabels = map[phonedomain.Classification]string{
	phonedomain.ClassificationVerified: "Verified",
	phonedomain.ClassificationContact:  "Contact",
	phonedomain.ClassificationSafe:     "Safe",
	phonedomain.ClassificationUnknown:  "Unknown",
	phonedomain.ClassificationLowSpam:  "Suspected Spam",
	phonedomain.ClassificationHighSpam: "Spam",
	phonedomain.ClassificationBlocked:  "Blocked",
}

// ClassificationColor maps a classification to its severity color for
// rendering. Unknown labels fall back to neutral.
func ClassificationColor(c phonedomain.Classification) string {
	if color, ok := classificationColors[c]; ok {
		return color
	}
	return "neutral"
}

// ClassificationLabel maps a classification to its display label.
func ClassificationLabel(c phonedomain.Classification) string {
	if label, ok := classificationLabels[c]; ok {
		return label
	}
	return "Unknown"
}
