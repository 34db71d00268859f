package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type SubjectHandler struct {
	svc services.SubjectService
}

func NewSubjectHandler(svc services.SubjectService) *SubjectHandler {
	return &SubjectHandler{svc: svc}
}

func (h *SubjectHandler) List(c *gin.Context) {
	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	rows, err := h.svc.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": rows})
}

type UpdateProgressRequest struct {
	Progress float64 `json:"progress"`
}

func (h *SubjectHandler) UpdateProgress(c *gin.Context) {
	const op = "SubjectHandler.UpdateProgress"

	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	subjectID, err := strconv.ParseInt(c.Param("subject_id"), 10, 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid subject_id", err))
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	if err := h.svc.UpdateProgress(c.Request.Context(), studentID, subjectID, req.Progress); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
