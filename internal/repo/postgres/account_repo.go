package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type AccountRepo struct {
	db Querier
}

func NewAccountRepo(db Querier) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (model.Account, error) {
	if id <= 0 {
		return model.Account{}, fmt.Errorf("invalid account id")
	}

	var (
		account model.Account
		role    string
		chatID  *int64
	)
	err := r.db.QueryRow(ctx, `
SELECT id, role, telegram_chat_id
FROM accounts
WHERE id = $1
`, id).Scan(&account.ID, &role, &chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("get account: %w", err)
	}
	account.Role = enums.Role(role)
	if chatID != nil {
		account.TelegramChatID = *chatID
	}
	return account, nil
}

// OwnerChatID resolves the Telegram chat of the pet's owner. ok is false
// when the owner has no chat linked.
func (r *AccountRepo) OwnerChatID(ctx context.Context, petID uuid.UUID) (int64, bool, error) {
	var chatID *int64
	err := r.db.QueryRow(ctx, `
SELECT a.telegram_chat_id
FROM pets p
JOIN accounts a ON a.id = p.owner_account_id
WHERE p.id = $1
`, petID).Scan(&chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, model.ErrPetNotFound
		}
		return 0, false, fmt.Errorf("get owner chat id: %w", err)
	}
	if chatID == nil || *chatID == 0 {
		return 0, false, nil
	}
	return *chatID, true, nil
}
