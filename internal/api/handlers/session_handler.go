package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type SessionHandler struct {
	chats    services.ChatService
	profiles services.ProfileService
}

func NewSessionHandler(chats services.ChatService, profiles services.ProfileService) *SessionHandler {
	return &SessionHandler{chats: chats, profiles: profiles}
}

type StartSessionRequest struct {
	SubjectID int64 `json:"subject_id" binding:"required"`
}

func (h *SessionHandler) Start(c *gin.Context) {
	const op = "SessionHandler.Start"

	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	enrolled, err := h.profiles.GetSubjectIDs(c.Request.Context(), studentID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !subsetOf([]int64{req.SubjectID}, enrolled) {
		writeError(c, utils.E(utils.CodeForbidden, op, "not enrolled in requested subject", nil))
		return
	}

	session, err := h.chats.Start(c.Request.Context(), studentID, req.SubjectID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Get(c *gin.Context) {
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
		writeError(c, utils.E(utils.CodeForbidden, "SessionHandler.Get", "forbidden", nil))
		return
	}

	c.JSON(http.StatusOK, session)
}
