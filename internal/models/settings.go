package models

import "time"

const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// AppSettings is the single runtime configuration row (id is always 1).
// It is re-read before every answered question so administrative changes
// take effect without a restart.
type AppSettings struct {
	ID               int64     `gorm:"column:id;primaryKey" json:"-"`
	LLMBackend       string    `gorm:"column:llm_backend;type:text" json:"llm_backend"`
	LLMModel         string    `gorm:"column:llm_model;type:text" json:"llm_model"`
	OllamaURL        string    `gorm:"column:ollama_url;type:text" json:"ollama_url"`
	OpenAIBaseURL    string    `gorm:"column:openai_base_url;type:text" json:"openai_base_url"`
	QdrantURL        string    `gorm:"column:qdrant_url;type:text" json:"qdrant_url"`
	QdrantCollection string    `gorm:"column:qdrant_collection;type:text" json:"qdrant_collection"`
	LoggingEnabled   bool      `gorm:"column:logging_enabled" json:"logging_enabled"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (AppSettings) TableName() string { return "app_settings" }

// DefaultSettings is the static fallback used when the settings row
// cannot be read.
func DefaultSettings() AppSettings {
	return AppSettings{
		ID:               1,
		LLMBackend:       BackendOllama,
		LLMModel:         "gemma3:4b",
		OllamaURL:        "http://localhost:11434",
		OpenAIBaseURL:    "https://api.openai.com",
		QdrantURL:        "http://localhost:6333",
		QdrantCollection: "tutor_demo",
		LoggingEnabled:   true,
	}
}
