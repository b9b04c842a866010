package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-hint-be/pkg/llm"
)

func newTestProvider(handler http.HandlerFunc) (*GeminiProvider, *httptest.Server) {
	server := httptest.NewServer(handler)
	provider := NewGeminiProvider("test-key", "test-model")
	provider.BaseURL = server.URL
	return provider, server
}

func TestChatSuccess(t *testing.T) {
	var captured geminiChatRequest
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(geminiChatResponse{
			Candidates: []geminiCandidate{
				{Content: &geminiContent{Parts: []geminiPart{{Text: "a gentle hint"}}}},
			},
		})
	})
	defer server.Close()

	reply, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "you give hints"},
		{Role: "user", Content: "help"},
		{Role: "assistant", Content: "sure"},
		{Role: "user", Content: "more"},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "a gentle hint" {
		t.Errorf("reply = %q, want %q", reply, "a gentle hint")
	}

	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "you give hints" {
		t.Error("system message not mapped to system_instruction")
	}
	if len(captured.Contents) != 3 {
		t.Fatalf("contents = %d, want 3 (system rides separately)", len(captured.Contents))
	}
	if captured.Contents[1].Role != "model" {
		t.Errorf("assistant role = %q, want %q", captured.Contents[1].Role, "model")
	}
}

func TestChatZeroTemperaturePassesThrough(t *testing.T) {
	var captured geminiChatRequest
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(geminiChatResponse{
			Candidates: []geminiCandidate{
				{Content: &geminiContent{Parts: []geminiPart{{Text: "ok"}}}},
			},
		})
	})
	defer server.Close()

	_, err := provider.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		llm.WithTemperature(0),
	)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if captured.GenerationConfig == nil || captured.GenerationConfig.Temperature == nil {
		t.Fatal("temperature missing from generation config")
	}
	if *captured.GenerationConfig.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", *captured.GenerationConfig.Temperature)
	}
}

func TestChatErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantKind   llm.ErrorKind
		wantsRetry bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: llm.ErrorKindRateLimited, wantsRetry: true},
		{name: "bad request", status: http.StatusBadRequest, wantKind: llm.ErrorKindInvalidRequest, wantsRetry: false},
		{name: "server error", status: http.StatusInternalServerError, wantKind: llm.ErrorKindUnavailable, wantsRetry: true},
		{name: "overloaded", status: http.StatusServiceUnavailable, wantKind: llm.ErrorKindUnavailable, wantsRetry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			defer server.Close()

			_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
			if err == nil {
				t.Fatal("Chat() error = nil, want classified failure")
			}

			modelErr, ok := llm.AsModelError(err)
			if !ok {
				t.Fatalf("error %v is not a *ModelError", err)
			}
			if modelErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", modelErr.Kind, tt.wantKind)
			}
			if modelErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", modelErr.StatusCode, tt.status)
			}
			if modelErr.Retryable() != tt.wantsRetry {
				t.Errorf("Retryable() = %v, want %v", modelErr.Retryable(), tt.wantsRetry)
			}
		})
	}
}

func TestChatEmptyCandidates(t *testing.T) {
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiChatResponse{})
	})
	defer server.Close()

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	modelErr, ok := llm.AsModelError(err)
	if !ok {
		t.Fatalf("error %v is not a *ModelError", err)
	}
	if modelErr.Kind != llm.ErrorKindUnknown {
		t.Errorf("Kind = %q, want %q", modelErr.Kind, llm.ErrorKindUnknown)
	}
}

func TestChatTransportFailure(t *testing.T) {
	provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	modelErr, ok := llm.AsModelError(err)
	if !ok {
		t.Fatalf("error %v is not a *ModelError", err)
	}
	if modelErr.Kind != llm.ErrorKindUnavailable {
		t.Errorf("Kind = %q, want %q", modelErr.Kind, llm.ErrorKindUnavailable)
	}
}
