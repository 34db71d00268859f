package services

import (
	"context"
	"strings"
	"time"

	"github.com/edutor/tutoria/internal/models"
	pgrepo "github.com/edutor/tutoria/internal/repositories/postgres"
	"github.com/edutor/tutoria/internal/utils"
	"github.com/sirupsen/logrus"
)

type MetricsService interface {
	// Record is best-effort: insert failures are logged and discarded so
	// metrics can never fail a user-facing answer.
	Record(ctx context.Context, m *models.ChatMetric)
	ListRecent(ctx context.Context, limit int) ([]models.ChatMetric, error)
}

type metricsService struct {
	metrics pgrepo.MetricRepository
	log     *logrus.Logger
}

func NewMetricsService(metrics pgrepo.MetricRepository, log *logrus.Logger) MetricsService {
	return &metricsService{metrics: metrics, log: log}
}

func (s *metricsService) Record(ctx context.Context, m *models.ChatMetric) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := s.metrics.Insert(ctx, m); err != nil {
		s.log.WithError(err).Warn("failed to record chat metric")
	}
}

func (s *metricsService) ListRecent(ctx context.Context, limit int) ([]models.ChatMetric, error) {
	const op = "MetricsService.ListRecent"

	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.metrics.ListRecent(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list metrics", err)
	}
	return rows, nil
}

// EstimateTokens approximates a token count as the whitespace-separated
// word count, never less than 1. A concatenation of two non-empty texts
// never estimates below either part alone.
func EstimateTokens(text string) int {
	n := len(strings.Fields(text))
	if n < 1 {
		return 1
	}
	return n
}
