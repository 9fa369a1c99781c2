// Package fixtures provides in-memory repository fakes and a snapshotting
// unit of work for service-level tests. The fakes honor the same error
// contracts as the GORM implementations.
package fixtures

import (
	"sort"
	"sync"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/google/uuid"
)

// Store holds all tables in memory. Operations live in a slice so insertion
// order is observable, matching the tie-break ordering of the real schema.
type Store struct {
	mu sync.Mutex

	currencies     map[string]domain.Currency
	accounts       map[uuid.UUID]domain.Account
	operations     []domain.Operation
	users          map[uuid.UUID]domain.User
	updateRequests map[uuid.UUID]domain.UpdateRequest

	// FailOperationCreateAt makes the Nth operation insert (1-based, counted
	// across the store's lifetime) fail with ErrInjected. Zero disables it.
	FailOperationCreateAt int
	operationCreates      int
}

func NewStore() *Store {
	return &Store{
		currencies:     make(map[string]domain.Currency),
		accounts:       make(map[uuid.UUID]domain.Account),
		users:          make(map[uuid.UUID]domain.User),
		updateRequests: make(map[uuid.UUID]domain.UpdateRequest),
	}
}

// SeedCurrency stores a currency directly, bypassing the service layer.
func (s *Store) SeedCurrency(c domain.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currencies[c.Code] = c
}

// SeedAccount stores an account directly.
func (s *Store) SeedAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}

// SeedUser stores a user directly.
func (s *Store) SeedUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Account returns a copy of the stored account row.
func (s *Store) Account(id uuid.UUID) (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	return a, ok
}

// Currency returns a copy of the stored currency row.
func (s *Store) Currency(code string) (domain.Currency, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.currencies[code]
	return c, ok
}

// User returns a copy of the stored user row.
func (s *Store) User(id uuid.UUID) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// OperationsOf returns the account's operations ordered like the real store:
// ascending CreatedAt, insertion order breaking ties.
func (s *Store) OperationsOf(accountID uuid.UUID) []domain.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.operationsOfLocked(accountID)
}

func (s *Store) operationsOfLocked(accountID uuid.UUID) []domain.Operation {
	var out []domain.Operation
	for _, op := range s.operations {
		if op.AccountID == accountID {
			out = append(out, op)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// state is a deep copy of every table, taken before a transaction and put
// back when it fails.
type state struct {
	currencies       map[string]domain.Currency
	accounts         map[uuid.UUID]domain.Account
	operations       []domain.Operation
	users            map[uuid.UUID]domain.User
	updateRequests   map[uuid.UUID]domain.UpdateRequest
	operationCreates int
}

func (s *Store) snapshotLocked() state {
	st := state{
		currencies:       make(map[string]domain.Currency, len(s.currencies)),
		accounts:         make(map[uuid.UUID]domain.Account, len(s.accounts)),
		operations:       append([]domain.Operation(nil), s.operations...),
		users:            make(map[uuid.UUID]domain.User, len(s.users)),
		updateRequests:   make(map[uuid.UUID]domain.UpdateRequest, len(s.updateRequests)),
		operationCreates: s.operationCreates,
	}
	for k, v := range s.currencies {
		st.currencies[k] = v
	}
	for k, v := range s.accounts {
		st.accounts[k] = v
	}
	for k, v := range s.users {
		st.users[k] = copyUser(v)
	}
	for k, v := range s.updateRequests {
		st.updateRequests[k] = copyUpdateRequest(v)
	}
	return st
}

func (s *Store) restoreLocked(st state) {
	s.currencies = st.currencies
	s.accounts = st.accounts
	s.operations = st.operations
	s.users = st.users
	s.updateRequests = st.updateRequests
	s.operationCreates = st.operationCreates
}

func copyUser(u domain.User) domain.User {
	if u.ConfirmationCode != nil {
		code := *u.ConfirmationCode
		u.ConfirmationCode = &code
	}
	return u
}

func copyUpdateRequest(r domain.UpdateRequest) domain.UpdateRequest {
	conditions := make(map[string]string, len(r.Conditions))
	for k, v := range r.Conditions {
		conditions[k] = v
	}
	r.Conditions = conditions
	return r
}
