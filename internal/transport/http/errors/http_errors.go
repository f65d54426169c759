package errors

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeDuplicateInteraction = "DUPLICATE_INTERACTION"
	CodeInvalidAction        = "INVALID_ACTION"
	CodeValidation           = "VALIDATION_ERROR"
	CodeTooFast              = "TOO_FAST"
	CodeInternal             = "INTERNAL_ERROR"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type RateLimitData struct {
	RetryAfterSec int64 `json:"retry_after_sec"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data any, message string) {
	Write(w, status, Envelope{Success: true, Data: data, Message: message})
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, Envelope{Success: false, Message: message, Code: code})
}

func WriteRateLimited(w http.ResponseWriter, retryAfterSec int64, message string) {
	w.Header().Set("Retry-After", strconv.FormatInt(retryAfterSec, 10))
	Write(w, http.StatusTooManyRequests, Envelope{
		Success: false,
		Data:    RateLimitData{RetryAfterSec: retryAfterSec},
		Message: message,
		Code:    CodeTooFast,
	})
}
