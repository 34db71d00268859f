package services

import (
	"context"
	"errors"
	"time"

	"github.com/edutor/tutoria/internal/models"
	mongorepo "github.com/edutor/tutoria/internal/repositories/mongo"
	"github.com/edutor/tutoria/internal/utils"

	"github.com/google/uuid"
)

type ChatService interface {
	Start(ctx context.Context, studentID, subjectID int64) (*models.ChatSession, error)
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error
}

type chatService struct {
	sessions mongorepo.ChatSessionRepository
}

func NewChatService(sessions mongorepo.ChatSessionRepository) ChatService {
	return &chatService{sessions: sessions}
}

func (s *chatService) Start(ctx context.Context, studentID, subjectID int64) (*models.ChatSession, error) {
	const op = "ChatService.Start"

	if studentID <= 0 || subjectID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id and subject_id are required", nil)
	}

	now := time.Now().UTC()
	session := &models.ChatSession{
		SessionID: uuid.NewString(),
		StudentID: studentID,
		SubjectID: subjectID,
		Turns:     []models.ChatTurn{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create chat session", err)
	}
	return session, nil
}

func (s *chatService) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	const op = "ChatService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	session, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "chat session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get chat session", err)
	}
	return session, nil
}

func (s *chatService) AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error {
	const op = "ChatService.AppendTurn"

	if sessionID == "" || turn.User == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id and turn.user are required", nil)
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	if err := s.sessions.AppendTurn(ctx, sessionID, turn); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "chat session not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to append chat turn", err)
	}
	return nil
}
