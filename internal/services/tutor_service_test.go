package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/providers/llm"
	"github.com/edutor/tutoria/internal/providers/vectorstore"
	pgrepo "github.com/edutor/tutoria/internal/repositories/postgres"
	"github.com/edutor/tutoria/internal/utils"
)

type fakeSettings struct {
	settings models.AppSettings
}

func (f *fakeSettings) Load(context.Context) models.AppSettings           { return f.settings }
func (f *fakeSettings) Update(context.Context, *models.AppSettings) error { return nil }

type fakeSubjects struct {
	context string
}

func (f *fakeSubjects) GetSubjectContext(context.Context, []int64) (string, error) {
	return f.context, nil
}
func (f *fakeSubjects) ListForStudent(context.Context, int64) ([]pgrepo.SubjectWithProgress, error) {
	return nil, nil
}
func (f *fakeSubjects) UpdateProgress(context.Context, int64, int64, float64) error { return nil }

type fakeMetrics struct {
	recorded []*models.ChatMetric
}

func (f *fakeMetrics) Record(_ context.Context, m *models.ChatMetric) {
	f.recorded = append(f.recorded, m)
}
func (f *fakeMetrics) ListRecent(context.Context, int) ([]models.ChatMetric, error) {
	return nil, nil
}

type fakeRetriever struct {
	chunks   []vectorstore.Chunk
	err      error
	calls    int
	question string
	subjects []int64
	k        int
}

func (f *fakeRetriever) Search(_ context.Context, question string, subjectIDs []int64, k int) ([]vectorstore.Chunk, error) {
	f.calls++
	f.question = question
	f.subjects = subjectIDs
	f.k = k
	return f.chunks, f.err
}

type fakeLLM struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestTutor(settings models.AppSettings, retr *fakeRetriever, client *fakeLLM, metrics *fakeMetrics) *tutorService {
	return &tutorService{
		settings:     &fakeSettings{settings: settings},
		subjects:     &fakeSubjects{context: "Materia: Investigación de Operaciones\nOptimización."},
		metrics:      metrics,
		newRetriever: func(models.AppSettings) Retriever { return retr },
		newLLM:       func(models.AppSettings) (llm.Client, error) { return client, nil },
		log:          quietLogger(),
	}
}

func TestAnswerQuestion(t *testing.T) {
	retr := &fakeRetriever{chunks: []vectorstore.Chunk{
		{Text: "fragmento uno", SubjectID: 1},
		{Text: "fragmento dos", SubjectID: 1},
	}}
	client := &fakeLLM{reply: "el simplex recorre vértices"}
	metrics := &fakeMetrics{}

	settings := models.DefaultSettings()
	svc := newTestTutor(settings, retr, client, metrics)

	profile := &models.Student{Name: "Ana García", Email: "ana.garcia@email.com", Career: "Ingeniería Industrial", Grade: "3", Language: "es"}
	reply, err := svc.AnswerQuestion(context.Background(), AnswerRequest{
		StudentID:  10,
		Question:   "¿Qué es el método simplex?",
		SubjectIDs: []int64{1},
		Profile:    profile,
		History:    []models.ChatTurn{{User: "hola", Tutor: "hola"}},
	})
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if reply != "el simplex recorre vértices" {
		t.Fatalf("reply = %q", reply)
	}

	if retr.calls != 1 || retr.k != retrievalTopK {
		t.Fatalf("retriever calls=%d k=%d", retr.calls, retr.k)
	}
	if len(retr.subjects) != 1 || retr.subjects[0] != 1 {
		t.Fatalf("retriever subjects = %v", retr.subjects)
	}

	for _, section := range []string{
		"fragmento uno\n---\nfragmento dos",
		"Historial de la conversación:\nTú: hola\nTutor: hola\n",
		"Nombre: Ana García",
		"¿Qué es el método simplex?",
		"Materia: Investigación de Operaciones",
	} {
		if !strings.Contains(client.prompt, section) {
			t.Fatalf("prompt missing %q:\n%s", section, client.prompt)
		}
	}

	if len(metrics.recorded) != 1 {
		t.Fatalf("metrics recorded = %d", len(metrics.recorded))
	}
	m := metrics.recorded[0]
	if m.UserID != 10 || m.SubjectID == nil || *m.SubjectID != 1 {
		t.Fatalf("metric = %+v", m)
	}
	if m.Backend != models.BackendOllama || m.Model != "gemma3:4b" {
		t.Fatalf("metric backend/model = %s/%s", m.Backend, m.Model)
	}
	if m.TotalTokens != m.PromptTokens+m.CompletionTokens {
		t.Fatalf("token totals inconsistent: %+v", m)
	}
}

func TestAnswerQuestionLLMFailureReturnsEmptyReply(t *testing.T) {
	retr := &fakeRetriever{chunks: []vectorstore.Chunk{{Text: "c"}}}
	client := &fakeLLM{err: errors.New("connection refused")}
	metrics := &fakeMetrics{}

	svc := newTestTutor(models.DefaultSettings(), retr, client, metrics)
	reply, err := svc.AnswerQuestion(context.Background(), AnswerRequest{
		StudentID:  1,
		Question:   "q",
		SubjectIDs: []int64{1},
	})
	if err != nil {
		t.Fatalf("llm failure must not surface as an error, got %v", err)
	}
	if reply != "" {
		t.Fatalf("reply = %q, want empty", reply)
	}

	if len(metrics.recorded) != 1 {
		t.Fatalf("metric must still be recorded, got %d", len(metrics.recorded))
	}
	if metrics.recorded[0].CompletionTokens != 1 {
		t.Fatalf("empty reply estimates to 1 token, got %d", metrics.recorded[0].CompletionTokens)
	}
}

func TestAnswerQuestionLoggingDisabled(t *testing.T) {
	retr := &fakeRetriever{}
	client := &fakeLLM{reply: "r"}
	metrics := &fakeMetrics{}

	settings := models.DefaultSettings()
	settings.LoggingEnabled = false
	svc := newTestTutor(settings, retr, client, metrics)

	if _, err := svc.AnswerQuestion(context.Background(), AnswerRequest{
		StudentID: 1, Question: "q", SubjectIDs: []int64{1},
	}); err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if len(metrics.recorded) != 0 {
		t.Fatalf("no metric expected when logging is disabled, got %d", len(metrics.recorded))
	}
}

func TestAnswerQuestionMisconfiguredBackend(t *testing.T) {
	retr := &fakeRetriever{}
	metrics := &fakeMetrics{}

	settings := models.DefaultSettings()
	settings.LLMBackend = "mistral-local"
	svc := &tutorService{
		settings:     &fakeSettings{settings: settings},
		subjects:     &fakeSubjects{},
		metrics:      metrics,
		newRetriever: func(models.AppSettings) Retriever { return retr },
		newLLM:       llm.New,
		log:          quietLogger(),
	}

	_, err := svc.AnswerQuestion(context.Background(), AnswerRequest{
		StudentID: 1, Question: "q", SubjectIDs: []int64{1},
	})
	if !utils.IsCode(err, utils.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if retr.calls != 0 {
		t.Fatal("retriever must not be called when the backend is misconfigured")
	}
	if len(metrics.recorded) != 0 {
		t.Fatal("no metric expected on configuration failure")
	}
}

func TestAnswerQuestionValidation(t *testing.T) {
	retr := &fakeRetriever{}
	client := &fakeLLM{}
	svc := newTestTutor(models.DefaultSettings(), retr, client, &fakeMetrics{})

	_, err := svc.AnswerQuestion(context.Background(), AnswerRequest{StudentID: 1, Question: "  ", SubjectIDs: []int64{1}})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("blank question: expected invalid argument, got %v", err)
	}

	_, err = svc.AnswerQuestion(context.Background(), AnswerRequest{StudentID: 1, Question: "q"})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("no subjects: expected invalid argument, got %v", err)
	}

	if retr.calls != 0 || client.calls != 0 {
		t.Fatal("validation failures must not reach retrieval or generation")
	}
}

func TestAnswerQuestionRetrievalFailure(t *testing.T) {
	retr := &fakeRetriever{err: errors.New("dial tcp: connection refused")}
	client := &fakeLLM{}
	svc := newTestTutor(models.DefaultSettings(), retr, client, &fakeMetrics{})

	_, err := svc.AnswerQuestion(context.Background(), AnswerRequest{
		StudentID: 1, Question: "q", SubjectIDs: []int64{1},
	})
	if !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if client.calls != 0 {
		t.Fatal("generation must not run when retrieval fails")
	}
}
