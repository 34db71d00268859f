package postgres

import (
	"context"
	"errors"

	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/utils"
	"gorm.io/gorm"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Updates(fields).Error
}
