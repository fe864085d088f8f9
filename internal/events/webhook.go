package events

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
	"github.com/dcastillo/pageant-scoring/internal/platform/resilience"
)

type WebhookBridgeConfig struct {
	TargetURL      string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookBridge pushes every broker event to a configured downstream consumer
// (e.g. a projection-screen service). Delivery is fire-and-forget: a failed
// push is logged and counted against the circuit breaker, never retried and
// never surfaced to the producing write path.
type WebhookBridge struct {
	client         *fasthttp.Client
	targetURL      string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	done           chan struct{}
}

func NewWebhookBridge(cfg WebhookBridgeConfig, logger *logging.Logger) (*WebhookBridge, error) {
	target := strings.TrimSpace(cfg.TargetURL)
	if target == "" {
		return nil, crerr.New("webhook target url is required")
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse webhook target url %q", target)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, crerr.Newf("webhook target url %q uses unsupported scheme %q", target, parsed.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookBridge{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		targetURL:      target,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

// Run consumes the broker until ctx is cancelled. Intended to be started as a
// goroutine from app wiring.
func (b *WebhookBridge) Run(ctx context.Context, broker *Broker) {
	b.done = make(chan struct{})
	defer close(b.done)

	ch, cancel := broker.Subscribe(ctx, broker.LastSeq())
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if err := b.push(evt); err != nil {
				b.logger.Warn("webhook push failed",
					"seq", evt.Seq,
					"type", string(evt.Type),
					"error", err,
				)
			}
		}
	}
}

func (b *WebhookBridge) push(evt Event) error {
	if b.circuitEnabled {
		if err := b.breaker.Allow(); err != nil {
			return fmt.Errorf("webhook target is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(evt)
	if err != nil {
		b.recordCircuitResult(nil)
		return crerr.Wrap(err, "marshal webhook event")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(b.targetURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	req.SetBody(body)

	if err := b.client.DoTimeout(req, resp, b.timeout); err != nil {
		b.recordCircuitResult(err)
		return crerr.Wrap(err, "post webhook event")
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		err := crerr.Newf("webhook target responded with status %d", status)
		b.recordCircuitResult(err)
		return err
	}

	b.recordCircuitResult(nil)
	return nil
}

func (b *WebhookBridge) recordCircuitResult(err error) {
	if !b.circuitEnabled || b.breaker == nil {
		return
	}
	if err == nil {
		b.breaker.RecordSuccess()
		return
	}
	b.breaker.RecordFailure()
}
