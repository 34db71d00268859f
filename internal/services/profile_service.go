package services

import (
	"context"
	"errors"

	"github.com/edutor/tutoria/internal/models"
	pgrepo "github.com/edutor/tutoria/internal/repositories/postgres"
	"github.com/edutor/tutoria/internal/utils"
)

type ProfileService interface {
	GetProfile(ctx context.Context, studentID int64) (*models.Student, error)
	GetSubjectIDs(ctx context.Context, studentID int64) ([]int64, error)
	Update(ctx context.Context, studentID int64, fields map[string]any) (*models.Student, error)
	Authenticate(ctx context.Context, email, password string) (*models.Student, error)
}

type profileService struct {
	students    pgrepo.StudentRepository
	enrollments pgrepo.EnrollmentRepository
}

func NewProfileService(students pgrepo.StudentRepository, enrollments pgrepo.EnrollmentRepository) ProfileService {
	return &profileService{students: students, enrollments: enrollments}
}

func (s *profileService) GetProfile(ctx context.Context, studentID int64) (*models.Student, error) {
	const op = "ProfileService.GetProfile"

	if studentID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}

	st, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get student", err)
	}
	return st, nil
}

func (s *profileService) GetSubjectIDs(ctx context.Context, studentID int64) ([]int64, error) {
	const op = "ProfileService.GetSubjectIDs"

	if studentID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}

	ids, err := s.enrollments.SubjectIDs(ctx, studentID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list enrolled subjects", err)
	}
	return ids, nil
}

// allowed profile update columns; credentials and identity stay fixed
var profileUpdateColumns = map[string]struct{}{
	"name":     {},
	"career":   {},
	"grade":    {},
	"language": {},
}

func (s *profileService) Update(ctx context.Context, studentID int64, fields map[string]any) (*models.Student, error) {
	const op = "ProfileService.Update"

	if studentID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}
	for k := range fields {
		if _, ok := profileUpdateColumns[k]; !ok {
			return nil, utils.E(utils.CodeInvalidArgument, op, "field cannot be updated: "+k, nil)
		}
	}
	if len(fields) > 0 {
		if err := s.students.UpdateFields(ctx, studentID, fields); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
		}
	}
	return s.GetProfile(ctx, studentID)
}

func (s *profileService) Authenticate(ctx context.Context, email, password string) (*models.Student, error) {
	const op = "ProfileService.Authenticate"

	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	st, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up student", err)
	}
	if err := utils.CheckPassword(st.Password, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", err)
	}
	return st, nil
}
