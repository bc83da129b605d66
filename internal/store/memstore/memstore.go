// server/internal/store/memstore/memstore.go

// Package memstore is a mutex-guarded in-memory implementation of the core
// store interfaces with the same conditional-update semantics as the Mongo
// store. It backs the core and transport tests and works for local runs
// without a database.
package memstore

import (
	"context"
	"sync"
	"time"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"
)

// Store implements core.InventoryStore, core.AffiliationRegistry,
// core.RequestLedger and core.AssignmentTracker on in-memory maps.
//
// The error fields inject failures into specific operations so saga
// compensation paths can be exercised.
type Store struct {
	mu sync.Mutex

	assets       map[string]models.AssetItem    // by assetID
	employers    map[string]models.User         // by email
	affiliations map[string]models.Affiliation  // by employee|employer
	requests     map[string]models.Request      // by requestID
	assignments  map[string]models.Assignment   // by assignmentID
	byRequest    map[string]string              // requestID -> assignmentID

	ReserveErr     error
	ReleaseErr     error
	OpenErr        error
	MarkDecidedErr error
	RemoveErr      error
	DiscardErr     error

	// MarkDecidedHook runs once, outside the lock, before the next MarkDecided
	// call. Tests use it to land a competing decision at the commit point.
	MarkDecidedHook func()
}

func New() *Store {
	return &Store{
		assets:       make(map[string]models.AssetItem),
		employers:    make(map[string]models.User),
		affiliations: make(map[string]models.Affiliation),
		requests:     make(map[string]models.Request),
		assignments:  make(map[string]models.Assignment),
		byRequest:    make(map[string]string),
	}
}

func pairKey(employeeEmail, employerEmail string) string {
	return employeeEmail + "|" + employerEmail
}

// --- seeding and inspection helpers for tests ---

func (s *Store) AddAsset(a models.AssetItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.AssetID] = a
}

func (s *Store) AddEmployer(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employers[u.Email] = u
}

func (s *Store) AddRequest(r models.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.RequestID] = r
}

func (s *Store) AddAffiliation(a models.Affiliation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.affiliations[pairKey(a.EmployeeEmail, a.EmployerEmail)] = a
}

func (s *Store) Asset(assetID string) (models.AssetItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[assetID]
	return a, ok
}

func (s *Store) Employer(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.employers[email]
	return u, ok
}

func (s *Store) Affiliation(employeeEmail, employerEmail string) (models.Affiliation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.affiliations[pairKey(employeeEmail, employerEmail)]
	return a, ok
}

func (s *Store) AssignmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assignments)
}

func (s *Store) AssignmentForRequest(requestID string) (models.Assignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byRequest[requestID]
	if !ok {
		return models.Assignment{}, false
	}
	asg, ok := s.assignments[id]
	return asg, ok
}

// --- core.InventoryStore ---

func (s *Store) GetAsset(_ context.Context, assetID string) (models.AssetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[assetID]
	if !ok {
		return models.AssetItem{}, core.ErrAssetNotFound
	}
	return a, nil
}

func (s *Store) ReserveUnit(_ context.Context, assetID string) (models.AssetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReserveErr != nil {
		return models.AssetItem{}, s.ReserveErr
	}
	a, ok := s.assets[assetID]
	if !ok {
		return models.AssetItem{}, core.ErrAssetNotFound
	}
	if a.Available <= 0 {
		return models.AssetItem{}, core.ErrOutOfStock
	}
	a.Available--
	s.assets[assetID] = a
	return a, nil
}

func (s *Store) ReleaseUnit(_ context.Context, assetID string) (models.AssetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReleaseErr != nil {
		return models.AssetItem{}, s.ReleaseErr
	}
	a, ok := s.assets[assetID]
	if !ok {
		return models.AssetItem{}, core.ErrAssetNotFound
	}
	if a.Available < a.Total {
		a.Available++
		s.assets[assetID] = a
	}
	return a, nil
}

func (s *Store) SetQuantity(_ context.Context, assetID string, newTotal int, now time.Time) (models.AssetItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[assetID]
	if !ok {
		return models.AssetItem{}, core.ErrAssetNotFound
	}
	assigned := a.Total - a.Available
	if newTotal < assigned {
		return models.AssetItem{}, core.ErrInvalidQuantity
	}
	a.Available += newTotal - a.Total
	a.Total = newTotal
	a.UpdatedAt = now
	s.assets[assetID] = a
	return a, nil
}

// --- core.AffiliationRegistry ---

func (s *Store) GetOrCreate(_ context.Context, employeeEmail, employerEmail, employeeName string, now time.Time) (models.Affiliation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(employeeEmail, employerEmail)
	if existing, ok := s.affiliations[key]; ok {
		return existing, false, nil
	}
	employer, ok := s.employers[employerEmail]
	if !ok {
		return models.Affiliation{}, false, core.ErrEmployerNotFound
	}
	if employer.CurrentEmployees >= employer.PackageLimit {
		return models.Affiliation{}, false, core.ErrPackageLimitReached
	}
	employer.CurrentEmployees++
	s.employers[employerEmail] = employer

	aff := models.Affiliation{
		EmployeeEmail: employeeEmail,
		EmployeeName:  employeeName,
		EmployerEmail: employerEmail,
		CompanyName:   employer.CompanyName,
		CompanyLogo:   employer.CompanyLogo,
		Role:          "member",
		Status:        models.AffiliationStatusActive,
		CreatedAt:     now,
	}
	s.affiliations[key] = aff
	return aff, true, nil
}

func (s *Store) Remove(_ context.Context, employeeEmail, employerEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	key := pairKey(employeeEmail, employerEmail)
	if _, ok := s.affiliations[key]; !ok {
		return nil
	}
	delete(s.affiliations, key)
	if employer, ok := s.employers[employerEmail]; ok && employer.CurrentEmployees > 0 {
		employer.CurrentEmployees--
		s.employers[employerEmail] = employer
	}
	return nil
}

// --- core.RequestLedger ---

func (s *Store) Insert(_ context.Context, req models.Request) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.RequestID] = req
	return req, nil
}

func (s *Store) Get(_ context.Context, requestID string) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return models.Request{}, core.ErrRequestNotFound
	}
	return req, nil
}

func (s *Store) MarkDecided(_ context.Context, requestID, status string, decidedAt time.Time) (models.Request, error) {
	if hook := s.MarkDecidedHook; hook != nil {
		s.MarkDecidedHook = nil
		hook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkDecidedErr != nil {
		return models.Request{}, s.MarkDecidedErr
	}
	req, ok := s.requests[requestID]
	if !ok {
		return models.Request{}, core.ErrRequestNotFound
	}
	if req.Status != models.RequestStatusPending {
		return models.Request{}, core.ErrRequestAlreadyDecided
	}
	req.Status = status
	req.DecidedAt = &decidedAt
	s.requests[requestID] = req
	return req, nil
}

// --- core.AssignmentTracker ---

func (s *Store) Open(_ context.Context, asg models.Assignment) (models.Assignment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.OpenErr != nil {
		return models.Assignment{}, false, s.OpenErr
	}
	if id, ok := s.byRequest[asg.RequestID]; ok {
		return s.assignments[id], false, nil
	}
	s.assignments[asg.AssignmentID] = asg
	s.byRequest[asg.RequestID] = asg.AssignmentID
	return asg, true, nil
}

func (s *Store) GetAssignment(_ context.Context, assignmentID string) (models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asg, ok := s.assignments[assignmentID]
	if !ok {
		return models.Assignment{}, core.ErrAssignmentNotFound
	}
	return asg, nil
}

func (s *Store) Close(_ context.Context, assignmentID string, returnedAt time.Time) (models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asg, ok := s.assignments[assignmentID]
	if !ok {
		return models.Assignment{}, core.ErrAssignmentNotFound
	}
	if asg.Status != models.AssignmentStatusAssigned {
		return models.Assignment{}, core.ErrAlreadyReturned
	}
	asg.Status = models.AssignmentStatusReturned
	asg.ReturnedAt = &returnedAt
	s.assignments[assignmentID] = asg
	return asg, nil
}

func (s *Store) Discard(_ context.Context, assignmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DiscardErr != nil {
		return s.DiscardErr
	}
	asg, ok := s.assignments[assignmentID]
	if !ok {
		return nil
	}
	delete(s.assignments, assignmentID)
	delete(s.byRequest, asg.RequestID)
	return nil
}
