package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/edutor/tutoria/internal/api/middleware"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/services"
	"github.com/edutor/tutoria/internal/utils"
)

type stubStudentRepo struct {
	byEmail map[string]*models.Student
}

func (s *stubStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, st := range s.byEmail {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (s *stubStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	if st, ok := s.byEmail[email]; ok {
		return st, nil
	}
	return nil, utils.ErrNotFound
}

func (s *stubStudentRepo) UpdateFields(context.Context, int64, map[string]any) error { return nil }

type stubEnrollmentRepo struct{}

func (stubEnrollmentRepo) SubjectIDs(context.Context, int64) ([]int64, error) { return nil, nil }
func (stubEnrollmentRepo) UpdateProgress(context.Context, int64, int64, float64) error {
	return nil
}

func loginRouter(t *testing.T, students map[string]*models.Student) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewProfileService(&stubStudentRepo{byEmail: students}, stubEnrollmentRepo{})
	r := gin.New()
	r.POST("/auth/login", NewAuthHandler(svc).Login)
	return r
}

func postLogin(t *testing.T, r *gin.Engine, body LoginRequest) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAILS", "")

	hash, err := utils.HashPassword("ana123")
	if err != nil {
		t.Fatal(err)
	}
	r := loginRouter(t, map[string]*models.Student{
		"ana.garcia@email.com": {ID: 10, Name: "Ana García", Email: "ana.garcia@email.com", Password: hash},
	})

	w := postLogin(t, r, LoginRequest{Email: "ana.garcia@email.com", Password: "ana123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" || resp.Student == nil || resp.Student.ID != 10 {
		t.Fatalf("response = %+v", resp)
	}

	claims := &middleware.Claims{}
	tok, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != "10" || claims.Role != "user" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("ana123")
	if err != nil {
		t.Fatal(err)
	}
	r := loginRouter(t, map[string]*models.Student{
		"ana.garcia@email.com": {ID: 10, Email: "ana.garcia@email.com", Password: hash},
	})

	w := postLogin(t, r, LoginRequest{Email: "ana.garcia@email.com", Password: "otra"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := loginRouter(t, map[string]*models.Student{})
	w := postLogin(t, r, LoginRequest{Email: "nadie@email.com", Password: "x"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLoginAdminRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAILS", "otro@email.com, Ana.Garcia@email.com")

	hash, err := utils.HashPassword("ana123")
	if err != nil {
		t.Fatal(err)
	}
	r := loginRouter(t, map[string]*models.Student{
		"ana.garcia@email.com": {ID: 10, Email: "ana.garcia@email.com", Password: hash},
	})

	w := postLogin(t, r, LoginRequest{Email: "ana.garcia@email.com", Password: "ana123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	claims := &middleware.Claims{}
	if _, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatal(err)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q, want admin", claims.Role)
	}
}
