package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, s *models.ChatSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error
}

type chatSessionRepo struct {
	col *mongo.Collection
}

func NewChatSessionRepo(db *mongo.Database) ChatSessionRepository {
	return &chatSessionRepo{col: db.Collection("chat_sessions")}
}

func (r *chatSessionRepo) Create(ctx context.Context, s *models.ChatSession) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	if s.Turns == nil {
		s.Turns = []models.ChatTurn{}
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *chatSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *chatSessionRepo) AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$push": bson.M{"turns": turn},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
