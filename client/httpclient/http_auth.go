package httpclient

// -----------------------------------------------------------------------------
// HEADER + COOKIE MANAGEMENT
// -----------------------------------------------------------------------------

// attachAuth injects auth credentials or cookies. An Authorization header
// set by the caller (for example by a prepare stage) is left untouched.
func (c *HTTPClient) attachAuth(r *HTTPRequest) {
	if authHeader := c.token.AuthorizationHeader(); authHeader != "" {
		if r.Header("Authorization") == "" {
			r.SetHeader("Authorization", authHeader)
		}
		return
	}
	if len(c.token.Cookies) > 0 && r.Header("Cookie") == "" {
		r.SetHeader("Cookie", c.token.CookieHeader())
	}
}
