package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidNumber         = errors.New("invalid_number")
	ErrInvalidSpamScore      = errors.New("invalid_spam_score")
	ErrInvalidClassification = errors.New("invalid_classification")
)

// UpsertRequest carries a full intelligence snapshot for a number, as
// delivered by the bundled dataset or a future sync collaborator.
type UpsertRequest struct {
	Number           string
	Name             string
	Category         Category
	SpamScore        int
	Classification   Classification
	ReportCount      int
	VerifiedBusiness bool
	LastReported     *time.Time
	Source           Source
}

type Service interface {
	// Lookup resolves raw input against the intelligence table. A miss
	// is a nil record, not an error.
	Lookup(ctx context.Context, raw string) (*PhoneNumber, error)
	Upsert(ctx context.Context, req UpsertRequest) (PhoneNumber, error)
	Count(ctx context.Context) (int64, error)
}
