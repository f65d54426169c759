package model

import "github.com/ivankudzin/tailmates/internal/domain/enums"

type Account struct {
	ID             int64      `json:"id"`
	Role           enums.Role `json:"role"`
	TelegramChatID int64      `json:"-"`
}
