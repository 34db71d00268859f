package postgres

import (
	"context"

	"github.com/edutor/tutoria/internal/models"
	"gorm.io/gorm"
)

type MetricRepository interface {
	Insert(ctx context.Context, m *models.ChatMetric) error
	ListRecent(ctx context.Context, limit int) ([]models.ChatMetric, error)
}

type metricRepo struct {
	db *gorm.DB
}

func NewMetricRepo(db *gorm.DB) MetricRepository {
	return &metricRepo{db: db}
}

func (r *metricRepo) Insert(ctx context.Context, m *models.ChatMetric) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metricRepo) ListRecent(ctx context.Context, limit int) ([]models.ChatMetric, error) {
	var rows []models.ChatMetric
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
