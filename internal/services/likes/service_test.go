package likes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/repo/memory"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
)

func setup(t *testing.T) (*Service, *memory.Store, model.Pet, model.Pet, model.Pet) {
	t.Helper()

	store := memory.NewStore()
	for id := int64(1); id <= 3; id++ {
		store.PutAccount(model.Account{ID: id, Role: enums.RoleCustomer})
	}
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mk := func(owner int64, name string) model.Pet {
		pet, err := store.Pets().Create(context.Background(), model.Pet{
			ID: uuid.New(), OwnerAccountID: owner, Name: name, Species: enums.SpeciesCat, CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("create pet: %v", err)
		}
		return pet
	}

	a, b, c := mk(1, "A"), mk(2, "B"), mk(3, "C")
	return NewService(store.Likes(), petssvc.NewService(store.Pets())), store, a, b, c
}

func swipe(t *testing.T, store *memory.Store, actor, target uuid.UUID, action enums.SwipeAction) {
	t.Helper()
	if _, err := store.Interactions().Create(context.Background(), model.Interaction{
		ActorPetID: actor, TargetPetID: target, Action: action,
	}); err != nil {
		t.Fatalf("record interaction: %v", err)
	}
}

func TestReceivedHidesAnsweredLikes(t *testing.T) {
	svc, store, a, b, c := setup(t)
	ctx := context.Background()

	swipe(t, store, a.ID, b.ID, enums.SwipeActionLike)
	swipe(t, store, c.ID, b.ID, enums.SwipeActionLike)
	swipe(t, store, b.ID, a.ID, enums.SwipeActionPass)

	items, err := svc.Received(ctx, b.ID, 2)
	if err != nil {
		t.Fatalf("received: %v", err)
	}
	if len(items) != 1 || items[0].Pet.ID != c.ID {
		t.Fatalf("expected only C pending, got %+v", items)
	}
}

func TestSentExcludesMatchesButKeepsPassedTargets(t *testing.T) {
	svc, store, a, b, c := setup(t)
	ctx := context.Background()

	swipe(t, store, a.ID, b.ID, enums.SwipeActionLike)
	swipe(t, store, a.ID, c.ID, enums.SwipeActionLike)
	swipe(t, store, c.ID, a.ID, enums.SwipeActionPass)
	swipe(t, store, b.ID, a.ID, enums.SwipeActionLike)
	if _, _, err := store.Matches().Upsert(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("upsert match: %v", err)
	}

	items, err := svc.Sent(ctx, a.ID, 1)
	if err != nil {
		t.Fatalf("sent: %v", err)
	}
	if len(items) != 1 || items[0].Pet.ID != c.ID {
		t.Fatalf("expected only C pending, got %+v", items)
	}
}

func TestLikesRequireOwnership(t *testing.T) {
	svc, _, a, _, _ := setup(t)

	if _, err := svc.Received(context.Background(), a.ID, 2); !errors.Is(err, petssvc.ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	if _, err := svc.Sent(context.Background(), uuid.Nil, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
