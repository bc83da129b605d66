// server/internal/core/service.go
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"asset-verse-api-server/internal/clock"
	"asset-verse-api-server/internal/models"

	"github.com/google/uuid"
)

// compensationRetries bounds how often a compensating action is retried before
// the saga gives up and surfaces a PartialFailureError for operator action.
const compensationRetries = 3

// RequestService executes the request lifecycle: submission, the approve/reject
// decision saga, returns, and quantity adjustments.
type RequestService struct {
	inventory    InventoryStore
	affiliations AffiliationRegistry
	requests     RequestLedger
	assignments  AssignmentTracker
	clock        clock.Clock
}

func NewRequestService(
	inventory InventoryStore,
	affiliations AffiliationRegistry,
	requests RequestLedger,
	assignments AssignmentTracker,
	clk clock.Clock,
) *RequestService {
	return &RequestService{
		inventory:    inventory,
		affiliations: affiliations,
		requests:     requests,
		assignments:  assignments,
		clock:        clk,
	}
}

type SubmitInput struct {
	EmployeeEmail string
	EmployeeName  string
	AssetID       string
	Note          string
}

// SubmitRequest inserts a pending request for one unit of the asset. The stock
// check here is advisory only; the authoritative check happens when the unit is
// reserved at approval time.
func (s *RequestService) SubmitRequest(ctx context.Context, in SubmitInput) (models.Request, error) {
	asset, err := s.inventory.GetAsset(ctx, in.AssetID)
	if err != nil {
		return models.Request{}, err
	}
	if asset.Available == 0 {
		return models.Request{}, ErrOutOfStock
	}

	req := models.Request{
		RequestID:     newID("REQ"),
		AssetID:       asset.AssetID,
		AssetName:     asset.Name,
		AssetType:     asset.Type,
		EmployeeEmail: in.EmployeeEmail,
		EmployeeName:  in.EmployeeName,
		EmployerEmail: asset.EmployerEmail,
		Note:          in.Note,
		Status:        models.RequestStatusPending,
		RequestedAt:   s.clock.Now(),
	}

	return s.requests.Insert(ctx, req)
}

// DecideRequest applies an HR decision to a pending request. A rejection only
// touches the ledger. An approval runs the saga: affiliation, stock
// reservation, assignment, then the status commit, compensating in reverse
// order if a later step fails. The limit check runs first because it blocks
// approvals more often than stock does, and failing there is cheaper than
// releasing a reserved unit.
func (s *RequestService) DecideRequest(ctx context.Context, requestID, outcome string) (models.Request, error) {
	if outcome != models.RequestStatusApproved && outcome != models.RequestStatusRejected {
		return models.Request{}, ErrInvalidOutcome
	}

	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return models.Request{}, err
	}
	if req.Status != models.RequestStatusPending {
		return models.Request{}, ErrRequestAlreadyDecided
	}

	now := s.clock.Now()

	if outcome == models.RequestStatusRejected {
		return s.requests.MarkDecided(ctx, requestID, models.RequestStatusRejected, now)
	}

	// Step 1: get or create the affiliation under the package limit.
	_, affCreated, err := s.affiliations.GetOrCreate(ctx, req.EmployeeEmail, req.EmployerEmail, req.EmployeeName, now)
	if err != nil {
		return models.Request{}, err
	}

	// Step 2: reserve one unit of stock.
	if _, err := s.inventory.ReserveUnit(ctx, req.AssetID); err != nil {
		if affCreated {
			if cerr := s.undoAffiliation(ctx, req); cerr != nil {
				return models.Request{}, s.partialFailure(requestID, "compensate affiliation", cerr)
			}
		}
		return models.Request{}, err
	}

	// Step 3: open the assignment.
	asg, asgCreated, err := s.assignments.Open(ctx, models.Assignment{
		AssignmentID:  newID("ASG"),
		RequestID:     req.RequestID,
		AssetID:       req.AssetID,
		AssetName:     req.AssetName,
		EmployeeEmail: req.EmployeeEmail,
		EmployerEmail: req.EmployerEmail,
		Status:        models.AssignmentStatusAssigned,
		AssignedAt:    now,
	})
	if err != nil {
		if cerr := s.undoReservation(ctx, req, affCreated); cerr != nil {
			return models.Request{}, s.partialFailure(requestID, "compensate reservation", cerr)
		}
		return models.Request{}, err
	}

	// Step 4: commit the approved status. Losing the race here means another
	// decision already landed. A concurrent approval shares this affiliation
	// and assignment (GetOrCreate and Open are idempotent per pair and per
	// request), so the loser may only give back the unit it reserved; a
	// concurrent rejection owns nothing, so everything this call did is undone.
	updated, err := s.requests.MarkDecided(ctx, requestID, models.RequestStatusApproved, now)
	if err != nil {
		if errors.Is(err, ErrRequestAlreadyDecided) {
			final, gerr := s.requests.Get(ctx, requestID)
			if gerr != nil {
				return models.Request{}, s.partialFailure(requestID, "verify concurrent decision", gerr)
			}
			if final.Status == models.RequestStatusApproved {
				if cerr := s.retry(func() error {
					_, rerr := s.inventory.ReleaseUnit(ctx, req.AssetID)
					return rerr
				}); cerr != nil {
					return models.Request{}, s.partialFailure(requestID, "release duplicate reservation", cerr)
				}
				return models.Request{}, err
			}
		}
		if asgCreated {
			if cerr := s.retry(func() error { return s.assignments.Discard(ctx, asg.AssignmentID) }); cerr != nil {
				return models.Request{}, s.partialFailure(requestID, "compensate assignment", cerr)
			}
		}
		if cerr := s.undoReservation(ctx, req, affCreated); cerr != nil {
			return models.Request{}, s.partialFailure(requestID, "compensate reservation", cerr)
		}
		return models.Request{}, err
	}

	return updated, nil
}

// GetRequest returns a request by its business id.
func (s *RequestService) GetRequest(ctx context.Context, requestID string) (models.Request, error) {
	return s.requests.Get(ctx, requestID)
}

// ReturnAssignment closes an assignment and releases its unit back to stock.
func (s *RequestService) ReturnAssignment(ctx context.Context, assignmentID string) (models.Assignment, error) {
	asg, err := s.assignments.Close(ctx, assignmentID, s.clock.Now())
	if err != nil {
		return models.Assignment{}, err
	}

	if err := s.retry(func() error {
		_, rerr := s.inventory.ReleaseUnit(ctx, asg.AssetID)
		return rerr
	}); err != nil {
		return models.Assignment{}, s.partialFailure(asg.RequestID, "release unit on return", err)
	}

	return asg, nil
}

// AdjustAssetQuantity changes an asset's total, keeping assigned units covered.
func (s *RequestService) AdjustAssetQuantity(ctx context.Context, assetID string, newTotal int) (models.AssetItem, error) {
	if newTotal < 0 {
		return models.AssetItem{}, ErrInvalidQuantity
	}
	return s.inventory.SetQuantity(ctx, assetID, newTotal, s.clock.Now())
}

func (s *RequestService) undoAffiliation(ctx context.Context, req models.Request) error {
	return s.retry(func() error {
		return s.affiliations.Remove(ctx, req.EmployeeEmail, req.EmployerEmail)
	})
}

func (s *RequestService) undoReservation(ctx context.Context, req models.Request, affCreated bool) error {
	if err := s.retry(func() error {
		_, rerr := s.inventory.ReleaseUnit(ctx, req.AssetID)
		return rerr
	}); err != nil {
		return fmt.Errorf("release unit: %w", err)
	}
	if affCreated {
		if err := s.undoAffiliation(ctx, req); err != nil {
			return fmt.Errorf("remove affiliation: %w", err)
		}
	}
	return nil
}

func (s *RequestService) retry(fn func() error) error {
	var err error
	for i := 0; i < compensationRetries; i++ {
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

func (s *RequestService) partialFailure(requestID, step string, err error) error {
	pf := &PartialFailureError{RequestID: requestID, Step: step, Err: err}
	log.Printf("RECONCILE NEEDED: %v", pf)
	return pf
}

// newID builds business ids in the PREFIX-xxxxxxxx form used across the API.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:8]))
}
