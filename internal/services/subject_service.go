package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/edutor/tutoria/internal/cache"
	pgrepo "github.com/edutor/tutoria/internal/repositories/postgres"
	"github.com/edutor/tutoria/internal/utils"
	"github.com/sirupsen/logrus"
)

// subjectContextTTL bounds how long a cached context block may outlive an
// administrative edit to a subject description.
const subjectContextTTL = time.Hour

type SubjectService interface {
	GetSubjectContext(ctx context.Context, subjectIDs []int64) (string, error)
	ListForStudent(ctx context.Context, studentID int64) ([]pgrepo.SubjectWithProgress, error)
	UpdateProgress(ctx context.Context, studentID, subjectID int64, progress float64) error
}

type subjectService struct {
	subjects    pgrepo.SubjectRepository
	enrollments pgrepo.EnrollmentRepository
	cache       cache.Cache
	log         *logrus.Logger
}

func NewSubjectService(subjects pgrepo.SubjectRepository, enrollments pgrepo.EnrollmentRepository, c cache.Cache, log *logrus.Logger) SubjectService {
	return &subjectService{subjects: subjects, enrollments: enrollments, cache: c, log: log}
}

// GetSubjectContext renders "Materia: {name}\n{description}" blocks joined
// by a blank line, in storage order. Subjects are static reference data,
// so the rendered text is cached; cache trouble falls through to Postgres.
func (s *subjectService) GetSubjectContext(ctx context.Context, subjectIDs []int64) (string, error) {
	const op = "SubjectService.GetSubjectContext"

	if len(subjectIDs) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "subject_ids must not be empty", nil)
	}

	key := subjectContextKey(subjectIDs)
	var cached string
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.log.WithError(err).Debug("subject context cache read failed")
	} else if hit {
		return cached, nil
	}

	subjects, err := s.subjects.GetByIDs(ctx, subjectIDs)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to load subjects", err)
	}

	blocks := make([]string, len(subjects))
	for i, subj := range subjects {
		blocks[i] = fmt.Sprintf("Materia: %s\n%s", subj.Name, subj.Description)
	}
	text := strings.Join(blocks, "\n\n")

	if err := s.cache.SetJSON(ctx, key, text, subjectContextTTL); err != nil {
		s.log.WithError(err).Debug("subject context cache write failed")
	}
	return text, nil
}

func (s *subjectService) ListForStudent(ctx context.Context, studentID int64) ([]pgrepo.SubjectWithProgress, error) {
	const op = "SubjectService.ListForStudent"

	if studentID <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}

	rows, err := s.subjects.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list subjects", err)
	}
	return rows, nil
}

func (s *subjectService) UpdateProgress(ctx context.Context, studentID, subjectID int64, progress float64) error {
	const op = "SubjectService.UpdateProgress"

	if studentID <= 0 || subjectID <= 0 {
		return utils.E(utils.CodeInvalidArgument, op, "student_id and subject_id are required", nil)
	}
	if progress < 0 || progress > 1 {
		return utils.E(utils.CodeInvalidArgument, op, "progress must be within [0,1]", nil)
	}

	if err := s.enrollments.UpdateProgress(ctx, studentID, subjectID, progress); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update progress", err)
	}
	return nil
}

// subjectContextKey is order-insensitive so [1,2] and [2,1] share an entry.
func subjectContextKey(ids []int64) string {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "subject_context:" + strings.Join(parts, ",")
}
