package generator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const geminiOKBody = `{"candidates":[{"content":{"parts":[{"text":"generated text"}]}}]}`

func newTestClient(serverURL string) *GeminiClient {
	return NewGeminiClient("test-key", "gemini-2.5-flash",
		WithBaseURL(serverURL),
		WithBackoffBase(time.Millisecond),
		WithAttemptTimeout(time.Second),
	)
}

func TestGeminiCompleteSuccess(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(geminiOKBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Complete(context.Background(), "hello prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "generated text" {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotBody, "hello prompt") {
		t.Errorf("request body missing prompt: %q", gotBody)
	}
}

func TestGeminiCompleteRetriesTransientErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(geminiOKBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "generated text" {
		t.Errorf("text = %q", text)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

// Exhausting every attempt on 429 yields the quota sentinel instead of an
// error, so the caller can surface a human-readable degraded result.
func TestGeminiCompleteQuotaSentinel(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !IsQuotaExhausted(text) {
		t.Errorf("text = %q, want quota sentinel", text)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGeminiCompleteQuotaSentinelDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "m",
		WithBaseURL(server.URL),
		WithBackoffBase(time.Millisecond),
		WithQuotaSentinel(false),
	)
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("want error when sentinel is disabled")
	}
}

func TestGeminiCompleteNonRetryableStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("want error on 400")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want no retries on 400", calls)
	}
}

func TestGeminiCompleteMissingCandidateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("want error when candidate text missing")
	}
}

func TestIsQuotaExhausted(t *testing.T) {
	if !IsQuotaExhausted(QuotaExhaustedSentinel) {
		t.Error("sentinel should be recognized")
	}
	if IsQuotaExhausted("ordinary response") {
		t.Error("ordinary text misclassified")
	}
}
