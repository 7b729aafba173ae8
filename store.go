package users

import (
	"sort"
	"sync"
)

const (
	// DefaultPageSize is used when a listing request carries no size.
	DefaultPageSize = 100
	// MaxPageSize caps the size a caller may request.
	MaxPageSize = 1000
)

// InMemoryStore keeps user records in a map guarded by a single lock. Ids
// are allocated from a monotonically increasing counter, so an id is never
// reused even after the record is deleted. All operations are linearizable
// with respect to each other and hold the lock only for the in-memory
// mutation; there is no I/O inside the store.
type InMemoryStore struct {
	mu     sync.RWMutex
	users  map[int]*User
	nextID int
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: map[int]*User{},
	}
}

// GetAll returns the requested page ordered by ascending id. Page defaults
// to 1 and size to DefaultPageSize when absent or below 1; size is clamped
// to MaxPageSize. An out-of-range page yields an empty, non-nil slice.
func (s *InMemoryStore) GetAll(page, size int) []User {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	s.mu.RLock()
	snapshot := make([]User, 0, len(s.users))
	for _, u := range s.users {
		snapshot = append(snapshot, *u)
	}
	s.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].ID < snapshot[j].ID
	})

	skip := (page - 1) * size
	if skip >= len(snapshot) {
		return []User{}
	}

	end := skip + size
	if end > len(snapshot) {
		end = len(snapshot)
	}

	return snapshot[skip:end]
}

// GetByID returns a copy of the record, or false when the id is absent.
func (s *InMemoryStore) GetByID(id int) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, false
	}

	cp := *u
	return &cp, true
}

// Add stores a new record under a freshly allocated id and returns it.
func (s *InMemoryStore) Add(name, email string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u := &User{
		ID:    s.nextID,
		Name:  name,
		Email: email,
	}
	s.users[u.ID] = u

	cp := *u
	return &cp
}

// Update replaces the record with id preserved. There is no partial merge:
// the caller always supplies both name and the optional email.
func (s *InMemoryStore) Update(id int, name, email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}

	s.users[id] = &User{
		ID:    id,
		Name:  name,
		Email: email,
	}
	return true
}

// Delete removes the record. A second delete of the same id returns false.
func (s *InMemoryStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}

	delete(s.users, id)
	return true
}

// Len reports the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
