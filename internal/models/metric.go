package models

import "time"

// ChatMetric is one append-only audit row per answered question.
// Token counts are estimates, not exact tokenizer output.
type ChatMetric struct {
	ID               int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID           int64     `gorm:"column:user_id" json:"user_id"`
	SubjectID        *int64    `gorm:"column:subject_id" json:"subject_id,omitempty"`
	Backend          string    `gorm:"column:backend;type:text" json:"backend"`
	Model            string    `gorm:"column:model;type:text" json:"model"`
	PromptTokens     int       `gorm:"column:prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int       `gorm:"column:completion_tokens" json:"completion_tokens"`
	TotalTokens      int       `gorm:"column:total_tokens" json:"total_tokens"`
	LatencyMs        int64     `gorm:"column:latency_ms" json:"latency_ms"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ChatMetric) TableName() string { return "chat_metrics" }
