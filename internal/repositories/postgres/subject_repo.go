package postgres

import (
	"context"

	"github.com/edutor/tutoria/internal/models"
	"gorm.io/gorm"
)

// SubjectWithProgress is the dashboard row: a subject joined with the
// student's enrollment progress.
type SubjectWithProgress struct {
	models.Subject
	Progress float64 `json:"progress"`
}

type SubjectRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]models.Subject, error)
	ListForStudent(ctx context.Context, studentID int64) ([]SubjectWithProgress, error)
}

type subjectRepo struct {
	db *gorm.DB
}

func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

// GetByIDs returns subjects in storage order, which is not guaranteed to
// match the input order.
func (r *subjectRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) ListForStudent(ctx context.Context, studentID int64) ([]SubjectWithProgress, error) {
	var rows []SubjectWithProgress
	err := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Select("subjects.*, enrollments.progress").
		Joins("JOIN enrollments ON enrollments.subject_id = subjects.id").
		Where("enrollments.student_id = ?", studentID).
		Scan(&rows).Error
	return rows, err
}
