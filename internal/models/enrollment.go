package models

import "time"

// Enrollment links a student to a subject. Uniqueness on the
// (student_id, subject_id) pair is expected but not enforced.
type Enrollment struct {
	ID              int64      `gorm:"column:id;primaryKey" json:"id"`
	StudentID       int64      `gorm:"column:student_id;index" json:"student_id"`
	SubjectID       int64      `gorm:"column:subject_id;index" json:"subject_id"`
	Progress        float64    `gorm:"column:progress;default:0" json:"progress"` // fraction in [0,1]
	LastInteraction *time.Time `gorm:"column:last_interaction" json:"last_interaction,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }
