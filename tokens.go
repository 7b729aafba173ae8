package users

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// TokenPrefix is prepended to every issued token.
const TokenPrefix = "token_"

// Demo tokens seeded at process start. They are documented constants so
// the API can be exercised without calling /auth/login first.
const (
	TokenDemo  = "token_demo123"
	TokenTest  = "token_test456"
	TokenAdmin = "token_admin789"
)

// DefaultSeedTokens returns the demo tokens a fresh registry starts with.
func DefaultSeedTokens() []string {
	return []string{TokenDemo, TokenTest, TokenAdmin}
}

// InMemoryTokenRegistry is a process-wide set of valid bearer tokens. A
// token is an opaque string compared by exact match; there is no per-user
// association and tokens are never revoked or expired.
type InMemoryTokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewTokenRegistry creates a registry seeded with the given tokens, or
// with DefaultSeedTokens when none are supplied.
func NewTokenRegistry(seed ...string) *InMemoryTokenRegistry {
	if len(seed) == 0 {
		seed = DefaultSeedTokens()
	}

	tokens := make(map[string]struct{}, len(seed))
	for _, t := range seed {
		if t = strings.TrimSpace(t); t != "" {
			tokens[t] = struct{}{}
		}
	}

	return &InMemoryTokenRegistry{tokens: tokens}
}

// IsValid reports whether the token is a current member of the set.
func (r *InMemoryTokenRegistry) IsValid(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[token]
	return ok
}

// Issue generates a new token, inserts it, and returns it. Tokens carry a
// random uuid block so they cannot be guessed from previously issued ones;
// the insert is retried on the (vanishingly rare) collision so uniqueness
// holds within a process run.
func (r *InMemoryTokenRegistry) Issue() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		token := TokenPrefix + uuid.NewString()[:8]
		if _, exists := r.tokens[token]; exists {
			continue
		}
		r.tokens[token] = struct{}{}
		return token
	}
}

// Len reports the number of registered tokens.
func (r *InMemoryTokenRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
