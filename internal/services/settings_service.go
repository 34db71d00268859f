package services

import (
	"context"
	"time"

	"github.com/edutor/tutoria/internal/models"
	pgrepo "github.com/edutor/tutoria/internal/repositories/postgres"
	"github.com/edutor/tutoria/internal/utils"
	"github.com/sirupsen/logrus"
)

type SettingsService interface {
	// Load never fails: any read error falls back to the static defaults
	// so an unreachable settings row cannot block answering.
	Load(ctx context.Context) models.AppSettings
	Update(ctx context.Context, s *models.AppSettings) error
}

type settingsService struct {
	settings pgrepo.SettingsRepository
	log      *logrus.Logger
}

func NewSettingsService(settings pgrepo.SettingsRepository, log *logrus.Logger) SettingsService {
	return &settingsService{settings: settings, log: log}
}

func (s *settingsService) Load(ctx context.Context) models.AppSettings {
	row, err := s.settings.Get(ctx)
	if err != nil {
		s.log.WithError(err).Warn("settings read failed, using defaults")
		return models.DefaultSettings()
	}
	return *row
}

func (s *settingsService) Update(ctx context.Context, in *models.AppSettings) error {
	const op = "SettingsService.Update"

	if in == nil {
		return utils.E(utils.CodeInvalidArgument, op, "settings are required", nil)
	}
	switch in.LLMBackend {
	case models.BackendOllama, models.BackendOpenAI:
	default:
		return utils.E(utils.CodeInvalidArgument, op, "llm_backend must be ollama or openai", nil)
	}

	in.UpdatedAt = time.Now().UTC()
	if err := s.settings.Update(ctx, in); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update settings", err)
	}
	return nil
}
