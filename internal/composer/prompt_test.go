package composer

import (
	"strings"
	"testing"

	"github.com/edutor/tutoria/internal/models"
)

func TestFormatHistoryEmpty(t *testing.T) {
	if got := FormatHistory(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := FormatHistory([]models.ChatTurn{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFormatHistoryShort(t *testing.T) {
	turns := []models.ChatTurn{
		{User: "hola", Tutor: "hola, ¿en qué te ayudo?"},
		{User: "qué es simplex", Tutor: "un método de optimización"},
	}
	want := "Historial de la conversación:\n" +
		"Tú: hola\nTutor: hola, ¿en qué te ayudo?\n" +
		"Tú: qué es simplex\nTutor: un método de optimización\n" +
		"\n"
	if got := FormatHistory(turns); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatHistoryWindow(t *testing.T) {
	turns := make([]models.ChatTurn, 8)
	for i := range turns {
		turns[i] = models.ChatTurn{User: "q" + string(rune('0'+i)), Tutor: "a" + string(rune('0'+i))}
	}

	got := FormatHistory(turns)
	if strings.Contains(got, "q2") {
		t.Fatalf("turn outside the window leaked into %q", got)
	}
	for i := 3; i < 8; i++ {
		want := "Tú: q" + string(rune('0'+i))
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	// original order preserved
	if strings.Index(got, "q3") > strings.Index(got, "q7") {
		t.Fatalf("turns out of order: %q", got)
	}
}

func TestBuildPromptSections(t *testing.T) {
	history := FormatHistory([]models.ChatTurn{{User: "hola", Tutor: "hola"}})
	chunks := []string{"fragmento uno", "fragmento dos"}

	got := BuildPrompt(history, "Materia: Investigación de Operaciones\nOptimización aplicada.", chunks,
		"¿Qué es el método simplex?", "Nombre: Ana García\nEmail: ana.garcia@email.com\nCarrera: Ingeniería Industrial\nGrado: 3\nIdioma: es")

	for _, section := range []string{
		"Eres un tutor inteligente.",
		"Historial de la conversación:\nTú: hola\nTutor: hola\n",
		"Contexto de la materia:\nMateria: Investigación de Operaciones",
		"Material de referencia (fragmentos relevantes):\nfragmento uno\n---\nfragmento dos",
		"Pregunta del estudiante:\n¿Qué es el método simplex?",
		"Perfil del estudiante:\nNombre: Ana García",
	} {
		if !strings.Contains(got, section) {
			t.Fatalf("prompt missing section %q:\n%s", section, got)
		}
	}
}

func TestBuildPromptNoHistoryNoHeading(t *testing.T) {
	got := BuildPrompt("", "ctx", []string{"c"}, "q", "p")
	if strings.Contains(got, "Historial") {
		t.Fatalf("empty history must not leave a heading:\n%s", got)
	}
	if !strings.Contains(got, "\n\nContexto de la materia:") {
		t.Fatalf("context section must follow the rule list directly:\n%s", got)
	}
}

func TestBuildPromptProfileFallback(t *testing.T) {
	got := BuildPrompt("", "ctx", nil, "q", "")
	if !strings.Contains(got, "Perfil del estudiante:\nNo disponible") {
		t.Fatalf("missing profile fallback:\n%s", got)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	history := FormatHistory([]models.ChatTurn{{User: "a", Tutor: "b"}})
	first := BuildPrompt(history, "ctx", []string{"x", "y"}, "q", "p")
	second := BuildPrompt(history, "ctx", []string{"x", "y"}, "q", "p")
	if first != second {
		t.Fatal("identical inputs must produce byte-identical prompts")
	}
}
