package models

type Subject struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:text;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Language    string `gorm:"column:language;type:text;default:es" json:"language"`
}

func (Subject) TableName() string { return "subjects" }
