package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type WSHandler struct {
	tutor    services.TutorService
	profiles services.ProfileService
	chats    services.ChatService
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(tutor services.TutorService, profiles services.ProfileService, chats services.ChatService, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		tutor:    tutor,
		profiles: profiles,
		chats:    chats,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Question string `json:"question"`
}

type wsServerMsg struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// ChatWS runs a live tutoring conversation over one socket. Each incoming
// question goes through the same pipeline as POST /api/chat; the session
// transcript accumulates across the connection.
func (h *WSHandler) ChatWS(c *gin.Context) {
	const op = "WSHandler.ChatWS"

	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	session, err := h.chats.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if session.StudentID != studentID {
		writeError(c, utils.E(utils.CodeForbidden, op, "forbidden", nil))
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), studentID)
	if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	turns := session.Turns

	for {
		var msg wsClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		question := strings.TrimSpace(msg.Question)
		if question == "" {
			if err := conn.WriteJSON(wsServerMsg{Error: "question is required"}); err != nil {
				return
			}
			continue
		}

		reply, err := h.tutor.AnswerQuestion(c.Request.Context(), services.AnswerRequest{
			StudentID:  studentID,
			Question:   question,
			SubjectIDs: []int64{session.SubjectID},
			Profile:    profile,
			History:    turns,
		})
		if err != nil {
			h.log.WithError(err).Warn("tutor pipeline failed over websocket")
			if err := conn.WriteJSON(wsServerMsg{Error: "failed to answer question"}); err != nil {
				return
			}
			continue
		}

		turn := models.ChatTurn{User: question, Tutor: reply, CreatedAt: time.Now().UTC()}
		turns = append(turns, turn)
		if err := h.chats.AppendTurn(c.Request.Context(), session.SessionID, turn); err != nil {
			h.log.WithError(err).Warn("failed to append chat turn")
		}

		if err := conn.WriteJSON(wsServerMsg{Reply: reply}); err != nil {
			return
		}
	}
}
