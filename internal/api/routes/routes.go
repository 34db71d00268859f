package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/edutor/tutoria/internal/api/handlers"
	"github.com/edutor/tutoria/internal/api/middleware"
)

type Deps struct {
	Auth    *handlers.AuthHandler
	Chat    *handlers.ChatHandler
	Profile *handlers.ProfileHandler
	Subject *handlers.SubjectHandler
	Session *handlers.SessionHandler
	Admin   *handlers.AdminHandler
	WS      *handlers.WSHandler
}

func Register(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/login", d.Auth.Login)

	authed := r.Group("/", middleware.JWTAuth())
	{
		authed.POST("/api/chat", d.Chat.Answer)

		authed.GET("/profile/me", d.Profile.Me)
		authed.PUT("/profile/update", d.Profile.Update)

		authed.GET("/subjects", d.Subject.List)
		authed.PUT("/subjects/:subject_id/progress", d.Subject.UpdateProgress)

		authed.POST("/chat/sessions", d.Session.Start)
		authed.GET("/chat/sessions/:session_id", d.Session.Get)

		authed.GET("/ws/chat/:session_id", d.WS.ChatWS)
	}

	admin := r.Group("/admin", middleware.JWTAuth(), middleware.RequireRole("admin"))
	{
		admin.GET("/settings", d.Admin.GetSettings)
		admin.PUT("/settings", d.Admin.UpdateSettings)
		admin.GET("/metrics", d.Admin.Metrics)
	}
}
