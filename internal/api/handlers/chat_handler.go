package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type ChatHandler struct {
	tutor    services.TutorService
	profiles services.ProfileService
	chats    services.ChatService
	log      *logrus.Logger
}

func NewChatHandler(tutor services.TutorService, profiles services.ProfileService, chats services.ChatService, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{tutor: tutor, profiles: profiles, chats: chats, log: log}
}

type ChatRequest struct {
	Question   string            `json:"question"`
	SubjectIDs []int64           `json:"subject_ids"`
	SessionID  string            `json:"session_id,omitempty"`
	History    []models.ChatTurn `json:"chat_history,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Answer validates the request, then runs the tutoring pipeline. The
// distinction between failure modes is deliberate: validation and
// upstream errors produce an error status, while an LLM failure produces
// a normal response with an empty reply.
func (h *ChatHandler) Answer(c *gin.Context) {
	const op = "ChatHandler.Answer"

	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "question is required", nil))
		return
	}
	if len(req.SubjectIDs) == 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "subject_ids must not be empty", nil))
		return
	}

	enrolled, err := h.profiles.GetSubjectIDs(c.Request.Context(), studentID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !subsetOf(req.SubjectIDs, enrolled) {
		writeError(c, utils.E(utils.CodeForbidden, op, "not enrolled in requested subject", nil))
		return
	}

	// An unknown student is not fatal: the prompt then carries the
	// "No disponible" profile marker.
	profile, err := h.profiles.GetProfile(c.Request.Context(), studentID)
	if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
		writeError(c, err)
		return
	}

	history := req.History
	if history == nil && req.SessionID != "" {
		session, err := h.chats.Get(c.Request.Context(), req.SessionID)
		if err != nil {
			writeError(c, err)
			return
		}
		if session.StudentID != studentID {
			writeError(c, utils.E(utils.CodeForbidden, op, "forbidden", nil))
			return
		}
		history = session.Turns
	}

	reply, err := h.tutor.AnswerQuestion(c.Request.Context(), services.AnswerRequest{
		StudentID:  studentID,
		Question:   req.Question,
		SubjectIDs: req.SubjectIDs,
		Profile:    profile,
		History:    history,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if req.SessionID != "" {
		turn := models.ChatTurn{User: req.Question, Tutor: reply, CreatedAt: time.Now().UTC()}
		if err := h.chats.AppendTurn(c.Request.Context(), req.SessionID, turn); err != nil {
			// the answer is already produced; losing the transcript entry
			// must not fail the response
			h.log.WithError(err).Warn("failed to append chat turn")
		}
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func subsetOf(ids, allowed []int64) bool {
	set := make(map[int64]struct{}, len(allowed))
	for _, id := range allowed {
		set[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
