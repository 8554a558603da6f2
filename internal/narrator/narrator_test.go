package narrator

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateAnnotator(t *testing.T) {
	a := NewTemplateAnnotator()
	ctx := context.Background()

	deadline := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("deadline and high priority", func(t *testing.T) {
		text := a.Annotate(ctx, ItemContext{Title: "Essay", Deadline: &deadline, Priority: "high"})
		assert.Equal(t, "Deadline is Tue, Mar 10, highly prioritized.", text)
	})

	t.Run("missed deadline", func(t *testing.T) {
		text := a.Annotate(ctx, ItemContext{Title: "Essay", Deadline: &deadline, Missed: true})
		assert.Equal(t, "Deadline has passed, rescheduled first.", text)
	})

	t.Run("no deadline", func(t *testing.T) {
		text := a.Annotate(ctx, ItemContext{Title: "Essay", Priority: "medium"})
		assert.Equal(t, "No deadline pressure.", text)
	})

	t.Run("important flag counts as high priority", func(t *testing.T) {
		text := a.Annotate(ctx, ItemContext{Title: "Essay", Important: true})
		assert.Equal(t, "No deadline pressure, highly prioritized.", text)
	})
}

func TestHTTPAnnotator_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"rationale": "Focus on this one first."})
	}))
	defer server.Close()

	a := NewHTTPAnnotator(DefaultHTTPAnnotatorConfig(server.URL), slog.New(slog.NewTextHandler(io.Discard, nil)))

	text := a.Annotate(context.Background(), ItemContext{Title: "Essay"})

	assert.Equal(t, "Focus on this one first.", text)
}

func TestHTTPAnnotator_FallsBackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewHTTPAnnotator(DefaultHTTPAnnotatorConfig(server.URL), slog.New(slog.NewTextHandler(io.Discard, nil)))

	text := a.Annotate(context.Background(), ItemContext{Title: "Essay", Priority: "high"})

	assert.Equal(t, "No deadline pressure, highly prioritized.", text)
}

func TestHTTPAnnotator_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := DefaultHTTPAnnotatorConfig(server.URL)
	config.FailureThreshold = 2
	a := NewHTTPAnnotator(config, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		a.Annotate(ctx, ItemContext{Title: "Essay"})
	}

	// After the threshold the breaker is open and the remote stops being hit.
	assert.Equal(t, int32(2), calls.Load())
}
