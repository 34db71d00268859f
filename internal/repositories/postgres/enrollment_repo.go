package postgres

import (
	"context"
	"time"

	"github.com/edutor/tutoria/internal/models"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	SubjectIDs(ctx context.Context, studentID int64) ([]int64, error)
	UpdateProgress(ctx context.Context, studentID, subjectID int64, progress float64) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) SubjectIDs(ctx context.Context, studentID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ?", studentID).
		Pluck("subject_id", &ids).Error
	return ids, err
}

func (r *enrollmentRepo) UpdateProgress(ctx context.Context, studentID, subjectID int64, progress float64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Updates(map[string]any{
			"progress":         progress,
			"last_interaction": now,
		}).Error
}
