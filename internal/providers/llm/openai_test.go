package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edutor/tutoria/internal/models"
)

func TestOpenAIGenerate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var got chatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: "respuesta"}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "gpt-4o-mini")
	reply, err := c.Generate(context.Background(), "pregunta")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "respuesta" {
		t.Fatalf("reply = %q", reply)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("Authorization = %q", auth)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != Persona {
		t.Fatalf("system message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "pregunta" {
		t.Fatalf("user message = %+v", got.Messages[1])
	}
}

func TestOpenAIGenerateEmptyKeyStillSendsBearer(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "gpt-4o-mini")
	if _, err := c.Generate(context.Background(), "q"); err == nil {
		t.Fatal("expected error on 401")
	}
	if auth != "Bearer " {
		t.Fatalf("Authorization = %q, the call must still be attempted", auth)
	}
}

func TestOpenAIGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "gpt-4o-mini")
	if _, err := c.Generate(context.Background(), "q"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestNewBackendSelection(t *testing.T) {
	if _, err := New(models.AppSettings{LLMBackend: models.BackendOllama}); err != nil {
		t.Fatalf("ollama: %v", err)
	}
	if _, err := New(models.AppSettings{LLMBackend: models.BackendOpenAI}); err != nil {
		t.Fatalf("openai: %v", err)
	}

	_, err := New(models.AppSettings{LLMBackend: "mistral-local"})
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend, got %v", err)
	}
}
