package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/edutor/tutoria/config"
	"github.com/edutor/tutoria/internal/api/handlers"
	"github.com/edutor/tutoria/internal/api/middleware"
	"github.com/edutor/tutoria/internal/api/routes"
	"github.com/edutor/tutoria/internal/cache"
	"github.com/edutor/tutoria/internal/logger"
	mongorepo "github.com/edutor/tutoria/internal/repositories/mongo"
	pgrepo "github.com/edutor/tutoria/internal/repositories/postgres"
	"github.com/edutor/tutoria/internal/services"
)

func main() {
	_ = godotenv.Load()

	appLog := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	appLog.Info("PostgreSQL connected")

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	appLog.Info("MongoDB connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	appLog.Info("Redis connected")

	students := pgrepo.NewStudentRepo(config.PostgresDB)
	subjects := pgrepo.NewSubjectRepo(config.PostgresDB)
	enrollments := pgrepo.NewEnrollmentRepo(config.PostgresDB)
	settings := pgrepo.NewSettingsRepo(config.PostgresDB)
	metrics := pgrepo.NewMetricRepo(config.PostgresDB)
	sessions := mongorepo.NewChatSessionRepo(config.MongoDatabase())

	settingsSvc := services.NewSettingsService(settings, appLog)
	profileSvc := services.NewProfileService(students, enrollments)
	subjectSvc := services.NewSubjectService(subjects, enrollments, cache.NewRedisCache(config.RedisClient), appLog)
	chatSvc := services.NewChatService(sessions)
	metricsSvc := services.NewMetricsService(metrics, appLog)
	tutorSvc := services.NewTutorService(settingsSvc, subjectSvc, metricsSvc, appLog)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(appLog))

	routes.Register(r, routes.Deps{
		Auth:    handlers.NewAuthHandler(profileSvc),
		Chat:    handlers.NewChatHandler(tutorSvc, profileSvc, chatSvc, appLog),
		Profile: handlers.NewProfileHandler(profileSvc),
		Subject: handlers.NewSubjectHandler(subjectSvc),
		Session: handlers.NewSessionHandler(chatSvc, profileSvc),
		Admin:   handlers.NewAdminHandler(settingsSvc, metricsSvc),
		WS:      handlers.NewWSHandler(tutorSvc, profileSvc, chatSvc, appLog),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
