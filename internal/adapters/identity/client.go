package identity

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"homenest/internal/adapters/observability"
	"homenest/internal/domain"
)

// Client verifies bearer tokens against the external identity provider.
// One verification call per request: no retries and no result caching,
// so a revoked token is rejected on the very next request.
type Client struct {
	base string
	hc   *http.Client
	sa   serviceAccount
	rl   *rate.Limiter
}

// serviceAccount is the decoded shape of the base64 credential blob the
// deployment passes via the environment.
type serviceAccount struct {
	ProjectID string `json:"project_id"`
	APIKey    string `json:"api_key"`
}

func New(base, credsB64 string, rps int) (*Client, error) {
	var sa serviceAccount
	if credsB64 != "" {
		raw, err := base64.StdEncoding.DecodeString(credsB64)
		if err != nil {
			return nil, fmt.Errorf("decode identity credentials: %w", err)
		}
		if err := json.Unmarshal(raw, &sa); err != nil {
			return nil, fmt.Errorf("parse identity credentials: %w", err)
		}
	}
	if rps <= 0 {
		rps = 50
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		sa:   sa,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (c *Client) Verify(ctx context.Context, token string) (domain.Identity, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Identity{}, err
	}

	body, _ := json.Marshal(verifyRequest{Token: token})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/tokens:verify", bytes.NewReader(body))
	if err != nil {
		return domain.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.sa.APIKey != "" {
		req.Header.Set("X-API-Key", c.sa.APIKey)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveIdentity("error", time.Since(start))
		if ctx.Err() != nil {
			return domain.Identity{}, ctx.Err()
		}
		return domain.Identity{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var vr verifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
			observability.ObserveIdentity("error", time.Since(start))
			return domain.Identity{}, err
		}
		if vr.Email == "" {
			observability.ObserveIdentity("rejected", time.Since(start))
			return domain.Identity{}, fmt.Errorf("%w: provider returned no email claim", domain.ErrTokenInvalid)
		}
		observability.ObserveIdentity("ok", time.Since(start))
		return domain.Identity{Email: vr.Email}, nil

	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		// Provider rejection: surface its detail so the 401 body can carry it.
		observability.ObserveIdentity("rejected", time.Since(start))
		detail := readDetail(resp.Body)
		if detail == "" {
			detail = fmt.Sprintf("provider status %d", resp.StatusCode)
		}
		return domain.Identity{}, fmt.Errorf("%w: %s", domain.ErrTokenInvalid, detail)

	default:
		observability.ObserveIdentity("error", time.Since(start))
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Identity{}, fmt.Errorf("identity provider status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// readDetail pulls a human-readable message out of a provider error body.
func readDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	var vr verifyResponse
	if err := json.Unmarshal(b, &vr); err == nil && vr.Message != "" {
		return vr.Message
	}
	return strings.TrimSpace(string(b))
}
