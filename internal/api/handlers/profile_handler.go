package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	student, err := h.svc.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Career   *string `json:"career,omitempty"`
	Grade    *string `json:"grade,omitempty"`
	Language *string `json:"language,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	studentID, ok := requireStudentID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Career != nil {
		fields["career"] = *req.Career
	}
	if req.Grade != nil {
		fields["grade"] = *req.Grade
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}

	student, err := h.svc.Update(c.Request.Context(), studentID, fields)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}
