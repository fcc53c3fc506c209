package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okEnvelope = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "## Calm\nThe entry is unhurried and content."}]},
    "finishReason": "STOP"
  }],
  "modelVersion": "gemini-test-001"
}`

type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func newServer(t *testing.T, status int, body string, inspect func(*http.Request, generateRequest)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		var req generateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("decode request %q: %v", raw, err)
		}
		if inspect != nil {
			inspect(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testClient(baseURL string) *Client {
	return New(Config{APIKey: "test-key", Model: "gemini-test", BaseURL: baseURL})
}

func TestAnalyzeMoodExtractsText(t *testing.T) {
	var seenPath, seenPrompt, seenRole string
	var keyed bool
	srv, calls := newServer(t, http.StatusOK, okEnvelope, func(r *http.Request, req generateRequest) {
		seenPath = r.URL.Path
		keyed = r.Header.Get("x-goog-api-key") == "test-key" || r.URL.Query().Get("key") == "test-key"
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			seenRole = req.Contents[0].Role
			seenPrompt = req.Contents[0].Parts[0].Text
		}
	})

	res, err := testClient(srv.URL).Analyze(context.Background(), "Walked by the sea today.", AnalyzeMood)
	require.NoError(t, err)

	assert.Equal(t, "## Calm\nThe entry is unhurried and content.", res.Text)
	assert.Equal(t, AnalyzeMood, res.Operation)
	assert.Equal(t, "gemini-test-001", res.Model)
	assert.Equal(t, "STOP", res.FinishReason)

	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.Contains(t, seenPath, "gemini-test:generateContent")
	assert.True(t, keyed, "api key must be sent")
	assert.Equal(t, "user", seenRole)
	assert.Contains(t, seenPrompt, "mood")
	assert.True(t, strings.HasSuffix(seenPrompt, "Walked by the sea today."))
}

func TestAnalyzeEachOperationSendsItsTemplate(t *testing.T) {
	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			want, err := Render(op, "entry body")
			require.NoError(t, err)

			var got string
			srv, _ := newServer(t, http.StatusOK, okEnvelope, func(_ *http.Request, req generateRequest) {
				if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
					got = req.Contents[0].Parts[0].Text
				}
			})
			_, err = testClient(srv.URL).Analyze(context.Background(), "entry body", op)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestAnalyzeMalformedEnvelope(t *testing.T) {
	bodies := map[string]string{
		"empty object":         `{}`,
		"no candidates":        `{"candidates": []}`,
		"no content":           `{"candidates": [{"finishReason": "SAFETY"}]}`,
		"no parts":             `{"candidates": [{"content": {"role": "model", "parts": []}}]}`,
		"part w/o text":        `{"candidates": [{"content": {"role": "model", "parts": [{}]}}]}`,
		"candidates not array": `{"candidates": "oops"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, body, nil)
			_, err := testClient(srv.URL).Analyze(context.Background(), "text", AnalyzeMood)
			assert.ErrorIs(t, err, ErrUpstream)
		})
	}
}

func TestAnalyzeUndecodableBodyIsUpstream(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `<html>gateway</html>`, nil)

	_, err := testClient(srv.URL).Analyze(context.Background(), "text", AnalyzeMood)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestAnalyzeErrorStatusIsUpstream(t *testing.T) {
	srv, calls := newServer(t, http.StatusBadRequest,
		`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`, nil)

	_, err := testClient(srv.URL).Analyze(context.Background(), "text", GenerateReflection)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls), "requests are never retried")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestAnalyzeTransportFailureIsNetwork(t *testing.T) {
	c := New(Config{
		APIKey:  "test-key",
		BaseURL: "http://journal.invalid",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset by peer")
		})},
	})

	_, err := c.Analyze(context.Background(), "text", GiveWritingAdvice)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestAnalyzeTimeoutIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Analyze(context.Background(), "text", AnalyzeMood)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestAnalyzeUnreachableIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := testClient(url).Analyze(context.Background(), "text", AnalyzeMood)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestAnalyzeMissingKeyIsConfig(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, okEnvelope, nil)
	c := New(Config{BaseURL: srv.URL})

	_, err := c.Analyze(context.Background(), "text", AnalyzeMood)
	assert.ErrorIs(t, err, ErrConfig)
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestAnalyzeValidation(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, okEnvelope, nil)
	c := testClient(srv.URL)

	_, err := c.Analyze(context.Background(), "  \n", AnalyzeMood)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Analyze(context.Background(), "text", Operation(42))
	assert.ErrorIs(t, err, ErrValidation)

	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, DefaultModel, New(Config{}).Model())
	assert.Equal(t, "custom", New(Config{Model: "custom"}).Model())
}
