package domain

import (
	"context"

	callhistorydomain "github.com/callshield/callshield/internal/callhistory/domain"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	settingsdomain "github.com/callshield/callshield/internal/settings/domain"
)

// RecordCallRequest feeds a platform call event into the log. The
// timestamp is stamped by the service; the blocked flag is decided by
// the caller through a separate block call.
type RecordCallRequest struct {
	PhoneNumber    string                      `json:"phone_number"`
	CallerName     string                      `json:"caller_name"`
	Direction      callhistorydomain.Direction `json:"direction"`
	Classification phonedomain.Classification  `json:"classification"`
	SpamScore      int                         `json:"spam_score"`
	Duration       int                         `json:"duration"`
	Notes          string                      `json:"notes"`
}

type Service interface {
	// LookupPhoneNumber resolves a raw number against the intelligence
	// table. A miss produces a well-formed unknown result, never an error.
	// The result is cached in a single slot until the next lookup.
	LookupPhoneNumber(ctx context.Context, raw string) (LookupResult, error)
	// LastLookup returns the cached result of the most recent lookup,
	// or nil when no lookup has happened or the slot was cleared.
	LastLookup() *LookupResult
	ClearLastLookup()

	// ShouldAutoBlock reports whether a result qualifies for automatic
	// blocking under the given settings. Pure: applying the block is a
	// separate explicit call.
	ShouldAutoBlock(result LookupResult, settings settingsdomain.UserSettings) bool

	// RecordCall appends a call event and refreshes the recent view.
	RecordCall(ctx context.Context, req RecordCallRequest) (callhistorydomain.CallRecord, error)
	// RecentCalls returns the cached recent-call snapshot, loading it on
	// first use.
	RecentCalls(ctx context.Context) ([]callhistorydomain.CallRecord, error)
	// SubmitFeedback marks the latest call from the number safe or spam.
	SubmitFeedback(ctx context.Context, number string, isSafe bool) (callhistorydomain.CallRecord, error)

	// Stats reports row counts across the three data tables.
	Stats(ctx context.Context) (StoreCounts, error)
}
