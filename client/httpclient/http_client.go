package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/joy-dx/presetreq/config"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/utils"
)

// -----------------------------------------------------------------------------
// PERSISTENT CLIENT IMPLEMENTATION
// -----------------------------------------------------------------------------

// HTTPClient is the net/http backed dto.Transport, providing automatic
// authentication and session management.
//
// It supports multiple authentication modes:
//   - OAuth2 TokenSource (golang.org/x/oauth2)
//   - Custom AuthProvider
//   - Cookie-based sessions
//
// HTTPClient is suitable for long-lived service integrations where
// multiple requests share authentication state safely.

const TransportHTTPRef = "net.transport.http"

var ErrDomainNotAllowed = errors.New("domain not allowed")

type HTTPClient struct {
	ref     string
	cfg     *HTTPClientConfig
	netCfg  *config.NetSvcConfig
	client  *http.Client
	token   dto.TokenInfo
	tokenMu sync.RWMutex
}

func NewHTTPClient(ref string, netCfg *config.NetSvcConfig, cfg *HTTPClientConfig) *HTTPClient {
	if ref == "" {
		ref = TransportHTTPRef
	}
	return &HTTPClient{
		ref:    ref,
		cfg:    cfg,
		netCfg: netCfg,
		client: &http.Client{
			Timeout: netCfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				DisableKeepAlives:   false,
				Proxy:               http.ProxyFromEnvironment,
			},
		},
	}
}

func (c *HTTPClient) Ref() string {
	return c.ref
}

// -----------------------------------------------------------------------------
// REQUEST EXECUTION
// -----------------------------------------------------------------------------

// Send executes one authenticated, middleware-wrapped call. Temporary network
// errors and 5xx responses are retried up to MaxRetries times; once retries
// are exhausted a 5xx response is returned as a normal response.
func (c *HTTPClient) Send(ctx context.Context, out *dto.Outgoing) (dto.Response, error) {
	if out == nil {
		return dto.Response{}, errors.New("nil outgoing request")
	}

	base, err := newHTTPRequest(out)
	if err != nil {
		return dto.Response{}, fmt.Errorf("build request: %w", err)
	}
	if err := c.checkDomain(base.URL); err != nil {
		return dto.Response{}, err
	}

	delay := c.cfg.Delay
	if delay == nil {
		delay = utils.ConstantDelay{Period: 1}
	}
	maxRetries := max(c.cfg.MaxRetries, 0)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := delay.Wait(ctx, out.Method+" "+out.URL, attempt); err != nil {
				return dto.Response{}, fmt.Errorf("retry wait: %w", err)
			}
		}

		resp, err := c.sendOnce(ctx, base.clone())
		if err != nil {
			lastErr = err
			// transient network errors → retry
			if utils.IsTemporaryErr(err) && attempt < maxRetries {
				continue
			}
			return dto.Response{}, err
		}
		if resp.StatusCode >= 500 && attempt < maxRetries {
			continue
		}
		resp.RequestID = out.RequestID
		return resp, nil
	}

	return dto.Response{}, fmt.Errorf("failed after %d attempts: %w", maxRetries+1, lastErr)
}

func (c *HTTPClient) sendOnce(ctx context.Context, reqCfg *HTTPRequest) (dto.Response, error) {
	for _, mw := range c.cfg.Middlewares {
		if err := mw(ctx, reqCfg); err != nil {
			return dto.Response{}, fmt.Errorf("middleware aborted: %w", err)
		}
	}

	if err := c.ensureToken(ctx); err != nil {
		return dto.Response{}, fmt.Errorf("ensure token: %w", err)
	}

	// attach credentials (Authorization or Cookies)
	c.tokenMu.RLock()
	c.attachAuth(reqCfg)
	c.tokenMu.RUnlock()

	reqCfg.FinalizeHeaders(c.netCfg)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		reqCfg.Method,
		reqCfg.URL,
		bytes.NewReader(reqCfg.BodyBytes),
	)
	if err != nil {
		return dto.Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header = reqCfg.Headers.Clone()

	// httpResp may be non-nil together with an error
	httpResp, reqErr := c.client.Do(httpReq)
	if httpResp != nil {
		defer func() {
			_, _ = io.Copy(io.Discard, httpResp.Body) // drain fully for connection reuse
			_ = httpResp.Body.Close()
		}()
	}
	if reqErr != nil {
		return dto.Response{}, fmt.Errorf("perform request: %w", reqErr)
	}

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return dto.Response{}, fmt.Errorf("read body: %w", err)
	}

	response := dto.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header.Clone(),
		Body:       bodyBytes,
	}

	// Capture cookies, prunes if expired
	if setCookies := response.Headers["Set-Cookie"]; len(setCookies) > 0 {
		c.captureCookiesFromResponse(response)
	}

	return response, nil
}

func (c *HTTPClient) checkDomain(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if !utils.DomainAllowed(u.Hostname(), c.netCfg.WhitelistDomains, c.netCfg.BlacklistDomains) {
		return fmt.Errorf("%w: %s", ErrDomainNotAllowed, u.Hostname())
	}
	return nil
}
