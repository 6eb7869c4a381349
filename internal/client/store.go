package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"addressbook-backend/internal/domains/address/model"
)

// Phase is the fetch lifecycle of the store.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseIdle
)

// State is an immutable snapshot of the store: the raw collection plus
// the filtered and paginated views derived from it.
type State struct {
	Phase      Phase
	Err        string
	Addresses  []model.AddressResponse
	Query      string
	Page       int
	PageSize   int
	Filtered   []model.AddressResponse
	Visible    []model.AddressResponse
	TotalPages int
}

// Store holds the client-side view of the address collection. The raw
// list comes from the API; filtering and pagination are recomputed
// locally on every change and pushed to subscribers.
type Store struct {
	mu          sync.Mutex
	client      *Client
	pageSize    int
	state       State
	subscribers []func(State)
}

func NewStore(client *Client, pageSize int) *Store {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Store{
		client: client,
		state: State{
			Phase:    PhaseLoading,
			Page:     1,
			PageSize: pageSize,
		},
		pageSize: pageSize,
	}
}

// Subscribe registers a callback invoked with a snapshot after every
// state change.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load fetches the full collection. On failure the store enters the
// error phase with the collection cleared; stale data never survives a
// failed refresh.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state.Phase = PhaseLoading
	s.publishLocked()
	s.mu.Unlock()

	addresses, err := s.client.List(ctx, "")

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.Phase = PhaseError
		s.state.Err = err.Error()
		s.state.Addresses = nil
		s.recomputeLocked()
		s.publishLocked()
		return err
	}
	s.state.Phase = PhaseIdle
	s.state.Err = ""
	s.state.Addresses = addresses
	s.recomputeLocked()
	s.publishLocked()
	return nil
}

// SetQuery replaces the filter text and jumps back to the first page.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
	s.state.Page = 1
	s.recomputeLocked()
	s.publishLocked()
}

// SetPage moves to page n if it is within range, otherwise does
// nothing.
func (s *Store) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > s.state.TotalPages {
		return
	}
	s.state.Page = n
	s.recomputeLocked()
	s.publishLocked()
}

func (s *Store) NextPage() {
	s.SetPage(s.State().Page + 1)
}

func (s *Store) PreviousPage() {
	s.SetPage(s.State().Page - 1)
}

// Create posts a new address and refetches the collection on success.
func (s *Store) Create(ctx context.Context, req *model.AddressCreateRequest) error {
	if _, err := s.client.Create(ctx, req); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Update modifies an address and refetches the collection on success.
func (s *Store) Update(ctx context.Context, id uuid.UUID, req *model.AddressUpdateRequest) error {
	if _, err := s.client.Update(ctx, id, req); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Delete removes an address and patches the local collection instead
// of refetching. The current page is clamped when the deletion empties
// the tail page.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]model.AddressResponse, 0, len(s.state.Addresses))
	for _, addr := range s.state.Addresses {
		if addr.ID != id {
			kept = append(kept, addr)
		}
	}
	s.state.Addresses = kept
	s.recomputeLocked()
	s.publishLocked()
	return nil
}

// recomputeLocked rebuilds the derived views and clamps the page into
// the valid range. Callers hold s.mu.
func (s *Store) recomputeLocked() {
	s.state.Filtered = Filter(s.state.Addresses, s.state.Query)
	s.state.TotalPages = TotalPages(len(s.state.Filtered), s.pageSize)
	if s.state.Page > s.state.TotalPages {
		s.state.Page = s.state.TotalPages
	}
	if s.state.Page < 1 {
		s.state.Page = 1
	}
	s.state.Visible = Paginate(s.state.Filtered, s.state.Page, s.pageSize)
}

func (s *Store) publishLocked() {
	snapshot := s.state
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
}
