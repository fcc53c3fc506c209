// Package analysis asks a Gemini model to comment on a journal entry.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	ErrValidation = errors.New("analysis: invalid request")
	ErrConfig     = errors.New("analysis: not configured")
	ErrNetwork    = errors.New("analysis: network failure")
	ErrUpstream   = errors.New("analysis: unexpected response")
)

const DefaultModel = "gemini-2.0-flash"

// Config selects the endpoint and credential.
type Config struct {
	APIKey string
	// Model defaults to DefaultModel.
	Model string
	// BaseURL overrides the Gemini API endpoint.
	BaseURL string
	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout time.Duration
	// HTTPClient replaces the client built from Timeout.
	HTTPClient *http.Client
}

// Result is the outcome of one analysis.
type Result struct {
	Operation    Operation `json:"operation" yaml:"operation"`
	Text         string    `json:"text" yaml:"text"`
	Model        string    `json:"model" yaml:"model"`
	FinishReason string    `json:"finishReason,omitempty" yaml:"finishReason,omitempty"`
}

// Client sends one request per Analyze call. It never retries and keeps
// nothing between calls.
type Client struct {
	cfg Config
	log *zap.Logger

	mu sync.Mutex
	gc *genai.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for request outcomes. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a Client for cfg. No request is made until Analyze.
func New(cfg Config, opts ...Option) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	c := &Client{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model is the model requests are sent to.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Analyze renders the prompt for op around text and returns the first
// candidate the model generates. The text is returned as is; the model is
// asked for a format but nothing checks it obeyed.
func (c *Client) Analyze(ctx context.Context, text string, op Operation) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: entry text is empty", ErrValidation)
	}
	prompt, err := Render(op, text)
	if err != nil {
		return nil, err
	}
	gc, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.generate(ctx, gc, prompt)
	if err != nil {
		c.log.Warn("analysis request failed",
			zap.Stringer("op", op), zap.Duration("took", time.Since(start)), zap.Error(err))
		return nil, err
	}

	res, err := extract(resp)
	if err != nil {
		c.log.Warn("analysis response unusable", zap.Stringer("op", op), zap.Error(err))
		return nil, err
	}
	res.Operation = op
	if res.Model == "" {
		res.Model = c.cfg.Model
	}
	c.log.Debug("analysis done",
		zap.Stringer("op", op), zap.String("model", res.Model),
		zap.Duration("took", time.Since(start)), zap.Int("chars", len(res.Text)))
	return res, nil
}

// client builds the genai client on first use. The key is checked on every
// call so a missing credential surfaces when an analysis is requested.
func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: no Gemini API key", ErrConfig)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gc != nil {
		return c.gc, nil
	}

	hc := &http.Client{Timeout: c.cfg.Timeout}
	if c.cfg.HTTPClient != nil {
		copied := *c.cfg.HTTPClient
		hc = &copied
	}
	hc.Transport = answerRecorder{next: hc.Transport}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      c.cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  hc,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	c.gc = gc
	return gc, nil
}

// generate sends one request and classifies whatever goes wrong. The SDK
// panics on some envelopes of the wrong shape; that is an upstream error too.
func (c *Client) generate(ctx context.Context, gc *genai.Client, prompt string) (resp *genai.GenerateContentResponse, err error) {
	answered := new(atomic.Bool)
	ctx = context.WithValue(ctx, answeredKey{}, answered)
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("%w: malformed response: %v", ErrUpstream, r)
		}
	}()
	resp, err = gc.Models.GenerateContent(ctx, c.cfg.Model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		return nil, classify(ctx, err, answered.Load())
	}
	return resp, nil
}

type answeredKey struct{}

// answerRecorder marks the request context once the endpoint has replied.
type answerRecorder struct {
	next http.RoundTripper
}

func (a answerRecorder) RoundTrip(r *http.Request) (*http.Response, error) {
	next := a.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(r)
	if err == nil {
		if answered, ok := r.Context().Value(answeredKey{}).(*atomic.Bool); ok {
			answered.Store(true)
		}
	}
	return resp, err
}

// classify maps a request error onto the package errors. An error status
// from the endpoint, or a body that could not be decoded, means it
// answered, so it is upstream. Anything else never got an answer.
func classify(ctx context.Context, err error, answered bool) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		var apiErr *genai.APIError
		switch v := any(e).(type) {
		case genai.APIError:
			apiErr = &v
		case *genai.APIError:
			apiErr = v
		}
		if apiErr != nil {
			return fmt.Errorf("%w: status %d %s: %s", ErrUpstream, apiErr.Code, apiErr.Status, apiErr.Message)
		}
	}
	if answered && ctx.Err() == nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// extract pulls candidates[0].content.parts[0].text out of the envelope.
func extract(resp *genai.GenerateContentResponse) (*Result, error) {
	missing := func(what string) error {
		return fmt.Errorf("%w: response has no %s", ErrUpstream, what)
	}
	switch {
	case resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return nil, missing("candidates")
	case resp.Candidates[0].Content == nil:
		return nil, missing("candidate content")
	case len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0] == nil:
		return nil, missing("content parts")
	case resp.Candidates[0].Content.Parts[0].Text == "":
		return nil, missing("text")
	}
	cand := resp.Candidates[0]
	return &Result{
		Text:         cand.Content.Parts[0].Text,
		Model:        resp.ModelVersion,
		FinishReason: string(cand.FinishReason),
	}, nil
}
