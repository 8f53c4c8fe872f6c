package identity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The web app historically sent its credential two ways: an opaque bearer
// token whose body is a JSON object carrying the Telegram id, and a plain
// X-Telegram-ID header. Both are accepted here and resolve through the same
// path, so no call site parses credentials on its own.

type tokenPayload struct {
	TelegramID json.Number `json:"telegram_id"`
}

// TelegramIDFromCredentials extracts the caller's Telegram id from the raw
// Authorization and X-Telegram-ID header values. Returns ErrUnauthenticated
// when neither carries a usable id.
func TelegramIDFromCredentials(authorization, headerID string) (int64, error) {
	if token := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer")); token != "" {
		var payload tokenPayload
		if err := json.Unmarshal([]byte(token), &payload); err != nil {
			return 0, ErrUnauthenticated
		}
		id, err := payload.TelegramID.Int64()
		if err != nil || id == 0 {
			return 0, ErrUnauthenticated
		}
		return id, nil
	}

	if raw := strings.TrimSpace(headerID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id == 0 {
			return 0, ErrUnauthenticated
		}
		return id, nil
	}

	return 0, ErrUnauthenticated
}
