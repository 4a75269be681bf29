package domain

import (
	"context"
	"errors"
)

var ErrInvalidNumber = errors.New("invalid_number")

// BlockRequest asks for a number to be suppressed.
type BlockRequest struct {
	Number      string
	Name        string
	Reason      string
	AutoBlocked bool
}

type Service interface {
	// Block is idempotent: blocking an already-blocked number returns
	// the existing record unchanged.
	Block(ctx context.Context, req BlockRequest) (BlockedNumber, error)
	// Unblock removes any block on the number; unblocking a number that
	// was never blocked is a no-op.
	Unblock(ctx context.Context, number string) error
	IsBlocked(ctx context.Context, number string) (bool, error)
	// List returns the block list most-recently-blocked first.
	List(ctx context.Context) ([]BlockedNumber, error)
	// Search filters the list by normalized-number substring, raw-number
	// substring, or case-insensitive name substring. An empty query
	// returns the full list.
	Search(ctx context.Context, query string) ([]BlockedNumber, error)
	ClearAll(ctx context.Context) error
	ClearAutoBlocked(ctx context.Context) error
	Counts(ctx context.Context) (Counts, error)
}
