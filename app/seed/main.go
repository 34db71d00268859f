package main

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/edutor/tutoria/config"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/utils"
)

type demoStudent struct {
	student  models.Student
	password string
	subjects []int64
}

func main() {
	_ = godotenv.Load()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	db := config.PostgresDB

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Subject{},
		&models.Enrollment{},
		&models.AppSettings{},
		&models.ChatMetric{},
	); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	if err := ensureSettings(db); err != nil {
		log.Fatalf("settings seed error: %v", err)
	}

	subjects := []models.Subject{
		{ID: 1, Name: "Investigación de Operaciones", Description: "Modelado matemático, programación lineal y optimización aplicada.", Language: "es"},
		{ID: 2, Name: "Derecho Internacional Público", Description: "Fuentes, sujetos y responsabilidad en el orden jurídico internacional.", Language: "es"},
	}
	for _, sub := range subjects {
		if err := ensureSubject(db, sub); err != nil {
			log.Fatalf("subject seed error: %v", err)
		}
	}

	demo := []demoStudent{
		{
			student:  models.Student{Name: "Ana García", Email: "ana.garcia@email.com", Career: "Ingeniería Industrial", Grade: "3", Language: "es"},
			password: "ana123",
			subjects: []int64{1},
		},
		{
			student:  models.Student{Name: "Luis Pérez", Email: "luis.perez@email.com", Career: "Derecho", Grade: "4", Language: "es"},
			password: "luis456",
			subjects: []int64{2},
		},
		{
			student:  models.Student{Name: "María López", Email: "maria.lopez@email.com", Career: "Ingeniería Industrial", Grade: "2", Language: "es"},
			password: "maria789",
			subjects: []int64{1, 2},
		},
	}
	for _, d := range demo {
		if err := ensureStudent(db, d); err != nil {
			log.Fatalf("student seed error: %v", err)
		}
	}

	log.Println("seed complete")
}

func ensureSettings(db *gorm.DB) error {
	var existing models.AppSettings
	err := db.First(&existing, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	defaults := models.DefaultSettings()
	return db.Create(&defaults).Error
}

func ensureSubject(db *gorm.DB, sub models.Subject) error {
	var existing models.Subject
	err := db.First(&existing, sub.ID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&sub).Error
}

func ensureStudent(db *gorm.DB, d demoStudent) error {
	var existing models.Student
	err := db.Where("email = ?", d.student.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(d.password)
	if err != nil {
		return err
	}
	d.student.Password = hash
	if err := db.Create(&d.student).Error; err != nil {
		return err
	}

	for _, subjectID := range d.subjects {
		enr := models.Enrollment{StudentID: d.student.ID, SubjectID: subjectID}
		if err := db.Create(&enr).Error; err != nil {
			return err
		}
	}
	return nil
}
