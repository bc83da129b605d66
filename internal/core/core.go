// server/internal/core/core.go
package core

import (
	"context"
	"time"

	"asset-verse-api-server/internal/models"
)

// InventoryStore mutates per-asset stock counters. ReserveUnit and ReleaseUnit
// must be single atomic conditional updates so that concurrent calls can never
// push Available below zero or above Total.
type InventoryStore interface {
	GetAsset(ctx context.Context, assetID string) (models.AssetItem, error)

	// ReserveUnit decrements Available by one if it is positive, returning the
	// updated record. Fails with ErrOutOfStock when Available is zero.
	ReserveUnit(ctx context.Context, assetID string) (models.AssetItem, error)

	// ReleaseUnit increments Available by one, capped at Total. A call against
	// an already-full asset is a no-op, not an error.
	ReleaseUnit(ctx context.Context, assetID string) (models.AssetItem, error)

	// SetQuantity changes Total and shifts Available by the same delta. Fails
	// with ErrInvalidQuantity when newTotal is below the currently assigned
	// unit count (Total - Available).
	SetQuantity(ctx context.Context, assetID string, newTotal int, now time.Time) (models.AssetItem, error)
}

// AffiliationRegistry holds employee-employer links and owns the package-limit
// enforcement against the employer account.
type AffiliationRegistry interface {
	// GetOrCreate returns the existing affiliation for the pair untouched, or
	// creates one after atomically incrementing the employer's employee count
	// under the packageLimit guard. The bool reports whether this call created
	// the affiliation.
	GetOrCreate(ctx context.Context, employeeEmail, employerEmail, employeeName string, now time.Time) (models.Affiliation, bool, error)

	// Remove deletes the affiliation for the pair and decrements the
	// employer's employee count. Used only to compensate a failed approval.
	Remove(ctx context.Context, employeeEmail, employerEmail string) error
}

// RequestLedger holds requests and their status transitions.
type RequestLedger interface {
	Insert(ctx context.Context, req models.Request) (models.Request, error)
	Get(ctx context.Context, requestID string) (models.Request, error)

	// MarkDecided transitions pending -> status atomically. A request that is
	// no longer pending fails with ErrRequestAlreadyDecided, which is how the
	// loser of a concurrent decision race is detected.
	MarkDecided(ctx context.Context, requestID, status string, decidedAt time.Time) (models.Request, error)
}

// AssignmentTracker holds records of asset units currently held by employees.
type AssignmentTracker interface {
	// Open creates the assignment, idempotent on the request id: a retry for
	// the same request returns the existing record with created=false.
	Open(ctx context.Context, asg models.Assignment) (models.Assignment, bool, error)

	GetAssignment(ctx context.Context, assignmentID string) (models.Assignment, error)

	// Close transitions assigned -> returned exactly once.
	Close(ctx context.Context, assignmentID string, returnedAt time.Time) (models.Assignment, error)

	// Discard removes an assignment that was opened by a saga that later
	// failed. Never used on assignments visible to callers.
	Discard(ctx context.Context, assignmentID string) error
}
