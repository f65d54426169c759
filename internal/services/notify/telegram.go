package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type TextSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type ChatResolver interface {
	OwnerChatID(ctx context.Context, petID uuid.UUID) (int64, bool, error)
}

type PetNamer interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Pet, error)
}

// TelegramDispatcher messages pet owners that have linked a Telegram chat.
// Owners without a chat are skipped silently.
type TelegramDispatcher struct {
	sender TextSender
	chats  ChatResolver
	pets   PetNamer
}

func NewTelegramDispatcher(sender TextSender, chats ChatResolver, pets PetNamer) *TelegramDispatcher {
	return &TelegramDispatcher{sender: sender, chats: chats, pets: pets}
}

func (d *TelegramDispatcher) OnMatchCreated(ctx context.Context, match model.Match) error {
	lowName := d.petName(ctx, match.PetLow)
	highName := d.petName(ctx, match.PetHigh)

	return errors.Join(
		d.notifyOwner(ctx, match.PetLow, fmt.Sprintf("It's a match! %s and %s liked each other.", lowName, highName)),
		d.notifyOwner(ctx, match.PetHigh, fmt.Sprintf("It's a match! %s and %s liked each other.", highName, lowName)),
	)
}

func (d *TelegramDispatcher) OnLikeReceived(ctx context.Context, actorPetID, targetPetID uuid.UUID) error {
	return d.notifyOwner(ctx, targetPetID,
		fmt.Sprintf("%s got a new like. Open TailMates to see who it is.", d.petName(ctx, targetPetID)))
}

func (d *TelegramDispatcher) notifyOwner(ctx context.Context, petID uuid.UUID, text string) error {
	if d.sender == nil || d.chats == nil {
		return fmt.Errorf("telegram dispatcher is not configured")
	}

	chatID, ok, err := d.chats.OwnerChatID(ctx, petID)
	if err != nil {
		return fmt.Errorf("resolve owner chat for pet %s: %w", petID, err)
	}
	if !ok {
		return nil
	}
	return d.sender.SendText(ctx, chatID, text)
}

func (d *TelegramDispatcher) petName(ctx context.Context, petID uuid.UUID) string {
	if d.pets != nil {
		if pet, err := d.pets.GetByID(ctx, petID); err == nil && pet.Name != "" {
			return pet.Name
		}
	}
	return "Your pet"
}
