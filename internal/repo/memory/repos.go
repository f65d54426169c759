package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type AccountRepo struct{ s *Store }

func (r *AccountRepo) GetByID(_ context.Context, id int64) (model.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepo) OwnerChatID(_ context.Context, petID uuid.UUID) (int64, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pet, ok := r.s.pets[petID]
	if !ok {
		return 0, false, model.ErrPetNotFound
	}
	account, ok := r.s.accounts[pet.OwnerAccountID]
	if !ok || account.TelegramChatID == 0 {
		return 0, false, nil
	}
	return account.TelegramChatID, true, nil
}

type PetRepo struct{ s *Store }

func (r *PetRepo) Create(_ context.Context, pet model.Pet) (model.Pet, error) {
	if pet.ID == uuid.Nil || pet.OwnerAccountID <= 0 || strings.TrimSpace(pet.Name) == "" {
		return model.Pet{}, fmt.Errorf("invalid pet payload")
	}
	if pet.CreatedAt.IsZero() {
		pet.CreatedAt = time.Now().UTC()
	}
	// timestamptz keeps microseconds; discovery cursors rely on the same precision.
	pet.CreatedAt = pet.CreatedAt.Truncate(time.Microsecond)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[pet.OwnerAccountID]; !ok {
		if !r.s.autoAccounts {
			return model.Pet{}, fmt.Errorf("create pet for account %d: %w", pet.OwnerAccountID, model.ErrAccountNotFound)
		}
		r.s.accounts[pet.OwnerAccountID] = model.Account{ID: pet.OwnerAccountID, Role: enums.RoleCustomer}
	}
	if _, exists := r.s.pets[pet.ID]; exists {
		return model.Pet{}, fmt.Errorf("pet %s already exists", pet.ID)
	}
	r.s.pets[pet.ID] = pet
	return pet, nil
}

func (r *PetRepo) GetByID(_ context.Context, id uuid.UUID) (model.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pet, ok := r.s.pets[id]
	if !ok {
		return model.Pet{}, fmt.Errorf("pet %s: %w", id, model.ErrPetNotFound)
	}
	return pet, nil
}

func (r *PetRepo) ListByOwner(_ context.Context, ownerAccountID int64) ([]model.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Pet, 0)
	for _, pet := range r.s.pets {
		if pet.OwnerAccountID == ownerAccountID {
			out = append(out, pet)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type InteractionRepo struct{ s *Store }

func (r *InteractionRepo) Create(_ context.Context, in model.Interaction) (model.Interaction, error) {
	if in.ActorPetID == uuid.Nil || in.TargetPetID == uuid.Nil || in.ActorPetID == in.TargetPetID {
		return model.Interaction{}, fmt.Errorf("invalid interaction payload")
	}
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	in.CreatedAt = in.CreatedAt.Truncate(time.Microsecond)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[in.ActorPetID]; !ok {
		return model.Interaction{}, model.ErrPetNotFound
	}
	if _, ok := r.s.pets[in.TargetPetID]; !ok {
		return model.Interaction{}, model.ErrPetNotFound
	}

	key := model.PetPair{A: in.ActorPetID, B: in.TargetPetID}
	if _, exists := r.s.interactions[key]; exists {
		return model.Interaction{}, fmt.Errorf("interaction %s -> %s: %w", in.ActorPetID, in.TargetPetID, model.ErrInteractionExists)
	}
	r.s.interactions[key] = in
	return in, nil
}

func (r *InteractionRepo) HasLike(_ context.Context, actorPetID, targetPetID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	in, ok := r.s.interactions[model.PetPair{A: actorPetID, B: targetPetID}]
	return ok && in.Action == enums.SwipeActionLike, nil
}

type MatchRepo struct{ s *Store }

func (r *MatchRepo) Upsert(_ context.Context, petA, petB uuid.UUID) (model.Match, bool, error) {
	if petA == uuid.Nil || petB == uuid.Nil || petA == petB {
		return model.Match{}, false, fmt.Errorf("invalid match payload")
	}
	key := canonicalKey(petA, petB)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.matches[key]; ok {
		return existing, false, nil
	}
	match := model.Match{
		ID:        uuid.New(),
		PetLow:    key.A,
		PetHigh:   key.B,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	r.s.matches[key] = match
	return match, true, nil
}

func (r *MatchRepo) GetByPair(_ context.Context, petA, petB uuid.UUID) (model.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	match, ok := r.s.matches[canonicalKey(petA, petB)]
	if !ok {
		return model.Match{}, model.ErrMatchNotFound
	}
	return match, nil
}

func (r *MatchRepo) ListForPet(_ context.Context, petID uuid.UUID, limit int) ([]model.Match, error) {
	if limit <= 0 {
		limit = 100
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Match, 0)
	for _, m := range r.s.matches {
		if m.Involves(petID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchRepo) ListUnmatchedMutualLikes(_ context.Context, limit int) ([]model.PetPair, error) {
	if limit <= 0 {
		limit = 500
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.PetPair, 0)
	for key, in := range r.s.interactions {
		if in.Action != enums.SwipeActionLike {
			continue
		}
		canonical := canonicalKey(key.A, key.B)
		if canonical.A != key.A {
			continue
		}
		reverse, ok := r.s.interactions[model.PetPair{A: key.B, B: key.A}]
		if !ok || reverse.Action != enums.SwipeActionLike {
			continue
		}
		if _, matched := r.s.matches[canonical]; matched {
			continue
		}
		out = append(out, canonical)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type DiscoveryRepo struct{ s *Store }

func (r *DiscoveryRepo) ListCandidates(_ context.Context, q model.CandidateQuery) ([]model.Pet, error) {
	if q.PetID == uuid.Nil || q.OwnerAccountID <= 0 {
		return nil, fmt.Errorf("invalid discovery query")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	breed := strings.ToLower(strings.TrimSpace(q.Breed))
	city := strings.ToLower(strings.TrimSpace(q.City))

	out := make([]model.Pet, 0)
	for _, pet := range r.s.pets {
		if pet.ID == q.PetID || pet.OwnerAccountID == q.OwnerAccountID {
			continue
		}
		if _, seen := r.s.interactions[model.PetPair{A: q.PetID, B: pet.ID}]; seen {
			continue
		}
		if q.Species != "" && pet.Species != q.Species {
			continue
		}
		if breed != "" && strings.ToLower(pet.Breed) != breed {
			continue
		}
		if city != "" && strings.ToLower(pet.City) != city {
			continue
		}
		if q.HasCursor && !beforeCursor(pet, q.CursorCreatedAt, q.CursorPetID) {
			continue
		}
		out = append(out, pet)
	}

	newestFirst(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func beforeCursor(pet model.Pet, createdAt time.Time, id uuid.UUID) bool {
	if pet.CreatedAt.Before(createdAt) {
		return true
	}
	return pet.CreatedAt.Equal(createdAt) && pet.ID.String() < id.String()
}

type LikeRepo struct{ s *Store }

func (r *LikeRepo) ListReceivedPending(_ context.Context, petID uuid.UUID, limit int) ([]model.LikedPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.LikedPet, 0)
	for key, in := range r.s.interactions {
		if key.B != petID || in.Action != enums.SwipeActionLike {
			continue
		}
		if _, answered := r.s.interactions[model.PetPair{A: petID, B: key.A}]; answered {
			continue
		}
		out = append(out, model.LikedPet{Pet: r.s.pets[key.A], LikedAt: in.CreatedAt})
	}
	return limitLiked(out, limit), nil
}

func (r *LikeRepo) ListSentPending(_ context.Context, petID uuid.UUID, limit int) ([]model.LikedPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.LikedPet, 0)
	for key, in := range r.s.interactions {
		if key.A != petID || in.Action != enums.SwipeActionLike {
			continue
		}
		if _, matched := r.s.matches[canonicalKey(key.A, key.B)]; matched {
			continue
		}
		out = append(out, model.LikedPet{Pet: r.s.pets[key.B], LikedAt: in.CreatedAt})
	}
	return limitLiked(out, limit), nil
}

func limitLiked(items []model.LikedPet, limit int) []model.LikedPet {
	if limit <= 0 {
		limit = 100
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].LikedAt.After(items[j].LikedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
