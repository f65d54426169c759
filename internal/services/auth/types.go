package auth

import (
	"errors"
	"time"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type AccessClaims struct {
	AccountID int64
	Role      enums.Role
	ExpiresAt time.Time
}
