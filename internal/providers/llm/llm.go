package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edutor/tutoria/internal/models"
)

// Persona is the system-role identity sent to chat-style backends.
const Persona = "Eres un tutor inteligente. Tu objetivo es ayudar al estudiante de manera personalizada y contextual."

// requestTimeout bounds a single generation call. Exceeding it is an
// invocation failure, never a retry trigger.
const requestTimeout = 120 * time.Second

// ErrUnsupportedBackend is returned by New for any backend tag outside
// the closed {ollama, openai} set, before any network activity.
var ErrUnsupportedBackend = errors.New("unsupported llm backend")

// Client generates a completion for a fully composed prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New selects the client for the configured backend. The backend set is
// closed; there is no plugin mechanism.
func New(settings models.AppSettings) (Client, error) {
	switch settings.LLMBackend {
	case models.BackendOllama:
		return NewOllama(settings.OllamaURL, settings.LLMModel), nil
	case models.BackendOpenAI:
		return NewOpenAI(settings.OpenAIBaseURL, settings.LLMModel), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, settings.LLMBackend)
	}
}
