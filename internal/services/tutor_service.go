package services

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/edutor/tutoria/internal/composer"
	"github.com/edutor/tutoria/internal/models"
	"github.com/edutor/tutoria/internal/providers/llm"
	"github.com/edutor/tutoria/internal/providers/vectorstore"
	"github.com/edutor/tutoria/internal/utils"
	"github.com/sirupsen/logrus"
)

// retrievalTopK is the number of nearest chunks requested per question.
const retrievalTopK = 5

const defaultEmbedModel = "nomic-embed-text"

// Retriever finds the chunks nearest to a question within the given
// subjects. Satisfied by the vectorstore client.
type Retriever interface {
	Search(ctx context.Context, question string, subjectIDs []int64, k int) ([]vectorstore.Chunk, error)
}

// The factories rebuild the outbound clients from the freshly loaded
// settings on every question, so administrative URL or backend changes
// apply without a restart.
type RetrieverFactory func(models.AppSettings) Retriever

type LLMFactory func(models.AppSettings) (llm.Client, error)

// AnswerRequest carries one question through the pipeline.
type AnswerRequest struct {
	StudentID  int64
	Question   string
	SubjectIDs []int64
	Profile    *models.Student   // optional; nil renders as "No disponible"
	History    []models.ChatTurn // optional; only the most recent turns are used
}

type TutorService interface {
	AnswerQuestion(ctx context.Context, req AnswerRequest) (string, error)
}

type tutorService struct {
	settings SettingsService
	subjects SubjectService
	metrics  MetricsService

	newRetriever RetrieverFactory
	newLLM       LLMFactory

	log *logrus.Logger
}

func NewTutorService(settings SettingsService, subjects SubjectService, metrics MetricsService, log *logrus.Logger) TutorService {
	embedModel := os.Getenv("EMBED_MODEL")
	if embedModel == "" {
		embedModel = defaultEmbedModel
	}

	return &tutorService{
		settings: settings,
		subjects: subjects,
		metrics:  metrics,
		newRetriever: func(st models.AppSettings) Retriever {
			embedder := llm.NewOllama(st.OllamaURL, st.LLMModel)
			return vectorstore.New(st.QdrantURL, st.QdrantCollection, embedder, embedModel)
		},
		newLLM: llm.New,
		log:    log,
	}
}

// AnswerQuestion runs the pipeline start to finish on the calling
// goroutine: settings, retrieval, subject context, history, prompt, timed
// LLM call, best-effort metric. An LLM invocation failure yields an empty
// reply, not an error; only upstream lookups and misconfiguration are
// fatal.
func (s *tutorService) AnswerQuestion(ctx context.Context, req AnswerRequest) (string, error) {
	const op = "TutorService.AnswerQuestion"

	if strings.TrimSpace(req.Question) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "question is required", nil)
	}
	if len(req.SubjectIDs) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "subject_ids must not be empty", nil)
	}

	settings := s.settings.Load(ctx)

	client, err := s.newLLM(settings)
	if err != nil {
		// configuration error: fail before any network call
		return "", utils.E(utils.CodeInternal, op, "llm backend misconfigured", err)
	}

	chunks, err := s.newRetriever(settings).Search(ctx, req.Question, req.SubjectIDs, retrievalTopK)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "vector store search failed", err)
	}
	chunkTexts := make([]string, len(chunks))
	for i, ch := range chunks {
		chunkTexts[i] = ch.Text
	}

	subjectContext, err := s.subjects.GetSubjectContext(ctx, req.SubjectIDs)
	if err != nil {
		return "", err
	}

	history := composer.FormatHistory(req.History)
	prompt := composer.BuildPrompt(history, subjectContext, chunkTexts, req.Question, req.Profile.PromptText())

	start := time.Now()
	reply, err := client.Generate(ctx, prompt)
	latency := time.Since(start)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"backend": settings.LLMBackend,
			"model":   settings.LLMModel,
		}).Warn("llm invocation failed, returning empty reply")
		reply = ""
	}

	if settings.LoggingEnabled {
		subjectID := req.SubjectIDs[0]
		promptTokens := EstimateTokens(prompt)
		completionTokens := EstimateTokens(reply)
		s.metrics.Record(ctx, &models.ChatMetric{
			UserID:           req.StudentID,
			SubjectID:        &subjectID,
			Backend:          settings.LLMBackend,
			Model:            settings.LLMModel,
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
			LatencyMs:        latency.Milliseconds(),
		})
	}

	return reply, nil
}
