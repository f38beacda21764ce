package presetreq

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// BearerPrepare returns a prepare stage that sets the Authorization header
// from ts before every send. Pair it with oauth2.ReuseTokenSource to avoid
// fetching a token per request.
func BearerPrepare(ts oauth2.TokenSource) PrepareFunc {
	return func(ctx context.Context, r *Request) error {
		tok, err := ts.Token()
		if err != nil {
			return fmt.Errorf("oauth2 token fetch: %w", err)
		}
		r.Headers(map[string]string{"Authorization": tok.Type() + " " + tok.AccessToken})
		return nil
	}
}
