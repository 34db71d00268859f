package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatTurn is one exchanged (student, tutor) pair. Only the most recent
// turns of a conversation reach the composed prompt.
type ChatTurn struct {
	User      string    `bson:"user" json:"user"`
	Tutor     string    `bson:"tutor" json:"tutor"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// ChatSession is the persisted transcript of one tutoring conversation.
type ChatSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	StudentID int64              `bson:"student_id" json:"student_id"`
	SubjectID int64              `bson:"subject_id" json:"subject_id"`

	Turns []ChatTurn `bson:"turns" json:"turns"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
