package models

import (
	"fmt"
	"time"
)

type Student struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:text;not null" json:"name"`
	Email    string `gorm:"column:email;type:text" json:"email"`
	Password string `gorm:"column:password;type:text" json:"-"`
	Career   string `gorm:"column:career;type:text" json:"career"`
	Grade    string `gorm:"column:grade;type:text" json:"grade"`
	Language string `gorm:"column:language;type:text;default:es" json:"language"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Student) TableName() string { return "students" }

// PromptText renders the profile fields exposed to prompt composition.
// The output must stay byte-stable: the composed prompt is compared
// literally in golden tests.
func (s *Student) PromptText() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("Nombre: %s\nEmail: %s\nCarrera: %s\nGrado: %s\nIdioma: %s",
		s.Name, s.Email, s.Career, s.Grade, s.Language)
}
