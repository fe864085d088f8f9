package anubis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/user"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	"github.com/dcastillo/pageant-scoring/internal/platform/resilience"
	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

// Client verifies judge and admin bearer tokens against the anubis account
// service. Verified principals are cached briefly so a judge tapping through
// score sheets does not introspect on every request, and a circuit breaker
// keeps an anubis outage from stalling the whole event.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	principals    *cache.Store
	breaker       *resilience.CircuitBreaker
	logger        *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, cacheTTL time.Duration, breakerCfg resilience.CircuitBreakerConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	cfg := resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	var principals *cache.Store
	if cacheTTL > 0 {
		principals = cache.NewStore(cacheTTL)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		principals:    principals,
		breaker:       resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := "principal:" + hashToken(token)
	if c.principals != nil {
		if cached, ok := c.principals.Get(ctx, cacheKey); ok {
			return cached.(user.Principal), nil
		}
	}

	if err := c.breaker.Allow(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: account service circuit open", usecase.ErrDependencyUnavailable)
	}

	principal, err := c.introspect(ctx, token)
	if err != nil {
		if isTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return user.Principal{}, err
	}
	c.breaker.RecordSuccess()

	if c.principals != nil {
		c.principals.Set(ctx, cacheKey, principal)
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	payload := introspectRequest{Token: token}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request introspection to anubis: %v", errAnubisTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %v", errAnubisTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "anubis introspection non-200",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, fmt.Errorf("%w: anubis introspection failed with status %d", errAnubisTransient, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	principal := user.Principal{
		UserID:      decoded.UserID,
		DisplayName: decoded.DisplayName,
	}
	switch decoded.Role {
	case "admin":
		principal.Role = user.RoleAdmin
	case "judge":
		principal.Role = user.RoleJudge
		division, ok := contestant.ParseDivision(decoded.Division)
		if !ok {
			return user.Principal{}, fmt.Errorf("invalid introspect response: unknown judge division %q", decoded.Division)
		}
		principal.Division = division
	default:
		return user.Principal{}, fmt.Errorf("%w: unknown role %q", usecase.ErrUnauthorized, decoded.Role)
	}

	return principal, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	Division    string `json:"division"`
	DisplayName string `json:"display_name"`
}
