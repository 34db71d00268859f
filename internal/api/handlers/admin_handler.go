package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type AdminHandler struct {
	settings services.SettingsService
	metrics  services.MetricsService
}

func NewAdminHandler(settings services.SettingsService, metrics services.MetricsService) *AdminHandler {
	return &AdminHandler{settings: settings, metrics: metrics}
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Load(c.Request.Context()))
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req models.AppSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.UpdateSettings", "invalid request body", err))
		return
	}

	if err := h.settings.Update(c.Request.Context(), &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.settings.Load(c.Request.Context()))
}

func (h *AdminHandler) Metrics(c *gin.Context) {
	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rows, err := h.metrics.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": rows})
}
