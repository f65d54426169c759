package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/domain/rules"
)

// Store keeps every table behind one mutex. Unique keys mirror the Postgres
// constraints so the engine behaves the same on both drivers.
type Store struct {
	mu           sync.RWMutex
	accounts     map[int64]model.Account
	pets         map[uuid.UUID]model.Pet
	interactions map[model.PetPair]model.Interaction
	matches      map[model.PetPair]model.Match

	autoAccounts bool
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[int64]model.Account),
		pets:         make(map[uuid.UUID]model.Pet),
		interactions: make(map[model.PetPair]model.Interaction),
		matches:      make(map[model.PetPair]model.Match),
	}
}

func (s *Store) Accounts() *AccountRepo         { return &AccountRepo{s: s} }
func (s *Store) Pets() *PetRepo                 { return &PetRepo{s: s} }
func (s *Store) Interactions() *InteractionRepo { return &InteractionRepo{s: s} }
func (s *Store) Matches() *MatchRepo            { return &MatchRepo{s: s} }
func (s *Store) Discovery() *DiscoveryRepo      { return &DiscoveryRepo{s: s} }
func (s *Store) Likes() *LikeRepo               { return &LikeRepo{s: s} }

// AutoRegisterAccounts makes pet creation register unknown owners as
// customers. Used by local runs where no identity system feeds accounts.
func (s *Store) AutoRegisterAccounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoAccounts = true
}

// PutAccount registers an account; accounts come from the identity system.
func (s *Store) PutAccount(account model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account
}

// MatchCount returns how many match rows cover the pair.
func (s *Store) MatchCount(petA, petB uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.matches {
		if rules.SamePair(m.PetLow, m.PetHigh, petA, petB) {
			count++
		}
	}
	return count
}

func (s *Store) InteractionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.interactions)
}

func canonicalKey(a, b uuid.UUID) model.PetPair {
	low, high := rules.CanonicalPair(a, b)
	return model.PetPair{A: low, B: high}
}

// newestFirst orders by created_at DESC, id DESC like the SQL feeds.
func newestFirst(items []model.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() > items[j].ID.String()
	})
}
