package postgres

import (
	"context"
	"errors"

	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/utils"
	"gorm.io/gorm"
)

// settingsRowID is the fixed id of the single settings row.
const settingsRowID = 1

type SettingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, s *models.AppSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*models.AppSettings, error) {
	var s models.AppSettings
	err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *settingsRepo) Update(ctx context.Context, s *models.AppSettings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).
		Model(&models.AppSettings{}).
		Where("id = ?", settingsRowID).
		Updates(map[string]any{
			"llm_backend":       s.LLMBackend,
			"llm_model":         s.LLMModel,
			"ollama_url":        s.OllamaURL,
			"openai_base_url":   s.OpenAIBaseURL,
			"qdrant_url":        s.QdrantURL,
			"qdrant_collection": s.QdrantCollection,
			"logging_enabled":   s.LoggingEnabled,
			"updated_at":        s.UpdatedAt,
		}).Error
}
