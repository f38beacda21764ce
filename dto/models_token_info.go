package dto

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TokenInfo represents active credential or session data.
// It supports both header-based tokens and cookie-based sessions.
type TokenInfo struct {
	// Authorization token, e.g. "abc123" for a bearer session
	AccessToken string
	// TokenType is inferred if not provided (default "Bearer").
	TokenType string
	// Expiry time. Optional, empty for cookie-only sessions.
	Expiry  time.Time
	Cookies []*http.Cookie
}

// IsExpired returns true if the token is close to or past expiry.
func (t *TokenInfo) IsExpired(buffer time.Duration) bool {
	if t.AccessToken == "" && len(t.Cookies) == 0 {
		return true
	}
	if t.Expiry.IsZero() {
		// Sessions with no expiry are considered indefinitely valid
		return false
	}
	return time.Now().After(t.Expiry.Add(-buffer))
}

// AuthorizationHeader renders "<Type> <Token>", or "" when there is no access token.
func (t *TokenInfo) AuthorizationHeader() string {
	if t.AccessToken == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", NormalizeAuthType(t.TokenType), t.AccessToken)
}

// CookieHeader joins stored cookies into a single Cookie header value.
func (t *TokenInfo) CookieHeader() string {
	var sb strings.Builder
	for _, ck := range t.Cookies {
		if ck == nil {
			continue
		}
		sb.WriteString(ck.Name + "=" + ck.Value + "; ")
	}
	return sb.String()
}

// NormalizeAuthType ensures proper "Bearer", "Basic", or custom capitalization.
func NormalizeAuthType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "bearer":
		return "Bearer"
	case "basic":
		return "Basic"
	default:
		if t == "" {
			return "Bearer"
		}
		return t
	}
}
