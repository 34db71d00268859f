// Package composer deterministically assembles the tutor prompt. It does
// no I/O: identical inputs always yield byte-identical prompt text.
package composer

import (
	"fmt"
	"strings"

	"github.com/edutor/tutoria/internal/models"
)

// HistoryWindow is the number of most recent turns kept in the prompt.
const HistoryWindow = 5

// ChunkSeparator joins retrieved chunk texts in the reference section.
const ChunkSeparator = "\n---\n"

// NoProfile is the literal marker used when no profile is available.
const NoProfile = "No disponible"

// promptTemplate fixes the section order and separators. The persona and
// the rule list are part of the contract with existing golden prompts and
// must not be reworded.
const promptTemplate = `
Eres un tutor inteligente. Tu objetivo es ayudar al estudiante de manera personalizada y contextual, siguiendo estas reglas:

- Explicaciones personalizadas: Adapta el nivel y estilo de explicación según el perfil y la pregunta del estudiante.
- Respuestas contextuales: Limítate a responder solo con base en el contenido relevante del curso proporcionado.
- Generación de pistas: Si el estudiante lo solicita o parece atascado, ofrece pistas antes que respuestas directas.
- Clarificación de conceptos: Si el estudiante pide aclaraciones, desglosa los conceptos y usa ejemplos claros.
- Retroalimentación automática: Si el estudiante responde una pregunta o ejercicio, proporciona feedback constructivo y sugerencias de mejora.
- Si el alumno pide recursos adicionales, sugiere materiales complementarios relacionados con la materia.
- Si el alumno quiere preguntas tipo quiz o examen, genera preguntas con opciones múltiples, espera la respuesta y proporciona feedback.

%sContexto de la materia:
%s

Material de referencia (fragmentos relevantes):
%s

Pregunta del estudiante:
%s

Perfil del estudiante:
%s
`

// FormatHistory renders the most recent HistoryWindow turns as a
// transcript block, in original order. Empty input yields an empty string
// so the history section disappears from the prompt instead of leaving an
// empty heading.
func FormatHistory(turns []models.ChatTurn) string {
	if len(turns) == 0 {
		return ""
	}
	if len(turns) > HistoryWindow {
		turns = turns[len(turns)-HistoryWindow:]
	}

	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "Tú: %s\nTutor: %s\n", t.User, t.Tutor)
	}
	return "Historial de la conversación:\n" + b.String() + "\n"
}

// BuildPrompt concatenates the fixed preamble, the formatted history (may
// be empty), the subject context, the joined chunk texts, the question and
// the rendered profile. An empty profile becomes the NoProfile marker.
func BuildPrompt(history, subjectContext string, chunkTexts []string, question, profile string) string {
	if profile == "" {
		profile = NoProfile
	}
	return fmt.Sprintf(promptTemplate,
		history,
		subjectContext,
		strings.Join(chunkTexts, ChunkSeparator),
		question,
		profile,
	)
}
