package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/edutor/tutoria/internal/api/middleware"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

const tokenTTL = 8 * time.Hour

type AuthHandler struct {
	profiles services.ProfileService
}

func NewAuthHandler(profiles services.ProfileService) *AuthHandler {
	return &AuthHandler{profiles: profiles}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Student *models.Student `json:"student"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	student, err := h.profiles.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	role := "user"
	if isAdminEmail(student.Email) {
		role = "admin"
	}

	token, err := middleware.NewToken(student, role, os.Getenv("JWT_SECRET"), tokenTTL)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AuthHandler.Login", "failed to sign token", err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Student: student})
}

// isAdminEmail checks the ADMIN_EMAILS env (comma-separated, case
// insensitive).
func isAdminEmail(email string) bool {
	emails := os.Getenv("ADMIN_EMAILS")
	if emails == "" || email == "" {
		return false
	}
	target := strings.ToLower(strings.TrimSpace(email))
	for _, e := range strings.Split(emails, ",") {
		if strings.ToLower(strings.TrimSpace(e)) == target {
			return true
		}
	}
	return false
}
