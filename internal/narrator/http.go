package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HTTPAnnotatorConfig configures the remote narrator client.
type HTTPAnnotatorConfig struct {
	Endpoint string
	Timeout  time.Duration

	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Timeout of the open state before probing again.
	BreakerTimeout time.Duration

	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32
}

// DefaultHTTPAnnotatorConfig returns sensible defaults.
func DefaultHTTPAnnotatorConfig(endpoint string) HTTPAnnotatorConfig {
	return HTTPAnnotatorConfig{
		Endpoint:         endpoint,
		Timeout:          5 * time.Second,
		MaxRequests:      1,
		BreakerTimeout:   30 * time.Second,
		FailureThreshold: 5,
	}
}

// HTTPAnnotator asks a remote text-generation service for rationale text.
// Calls run behind a circuit breaker; when the remote is down or the
// breaker is open, it falls back to the template annotator so sessions
// still carry a rationale.
type HTTPAnnotator struct {
	client   *http.Client
	endpoint string
	breaker  *gobreaker.CircuitBreaker[string]
	fallback *TemplateAnnotator
	logger   *slog.Logger
}

// NewHTTPAnnotator creates an HTTPAnnotator.
func NewHTTPAnnotator(config HTTPAnnotatorConfig, logger *slog.Logger) *HTTPAnnotator {
	settings := gobreaker.Settings{
		Name:        "narrator",
		MaxRequests: config.MaxRequests,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("narrator circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &HTTPAnnotator{
		client:   &http.Client{Timeout: config.Timeout},
		endpoint: config.Endpoint,
		breaker:  gobreaker.NewCircuitBreaker[string](settings),
		fallback: NewTemplateAnnotator(),
		logger:   logger,
	}
}

type annotateRequest struct {
	Title     string     `json:"title"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Priority  string     `json:"priority"`
	Important bool       `json:"important"`
	Missed    bool       `json:"missed"`
}

type annotateResponse struct {
	Rationale string `json:"rationale"`
}

// Annotate requests rationale text from the remote service, degrading to
// the template fallback on any failure.
func (a *HTTPAnnotator) Annotate(ctx context.Context, item ItemContext) string {
	text, err := a.breaker.Execute(func() (string, error) {
		return a.call(ctx, item)
	})
	if err != nil {
		a.logger.Debug("narrator unavailable, using template fallback", "error", err)
		return a.fallback.Annotate(ctx, item)
	}
	return text
}

func (a *HTTPAnnotator) call(ctx context.Context, item ItemContext) (string, error) {
	body, err := json.Marshal(annotateRequest{
		Title:     item.Title,
		Deadline:  item.Deadline,
		Priority:  item.Priority,
		Important: item.Important,
		Missed:    item.Missed,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("narrator returned status %d", resp.StatusCode)
	}

	var out annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Rationale, nil
}
