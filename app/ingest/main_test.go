package main

import (
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	got := chunkText("un texto corto", 500, 50)
	if len(got) != 1 || got[0] != "un texto corto" {
		t.Fatalf("chunks = %v", got)
	}
	if chunkText("   ", 500, 50) != nil {
		t.Fatal("blank input must yield no chunks")
	}
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("palabra ", 200) // 1600 runes
	chunks := chunkText(text, 500, 50)
	if len(chunks) < 3 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 500 {
			t.Fatalf("chunk %d exceeds window: %d runes", i, len([]rune(c)))
		}
	}
	// consecutive chunks share the overlap region
	first := []rune(strings.Repeat("palabra ", 200))
	wantStartOfSecond := strings.TrimSpace(string(first[450:500]))
	if !strings.HasPrefix(chunks[1], wantStartOfSecond) {
		t.Fatalf("chunk 1 does not start inside the previous window: %q", chunks[1][:20])
	}
}

func TestChunkTextMultibyte(t *testing.T) {
	text := strings.Repeat("á", 1200)
	chunks := chunkText(text, 500, 50)
	joined := strings.Join(chunks, "")
	if strings.ContainsRune(joined, '�') {
		t.Fatal("multibyte runes must not be split")
	}
}

func TestParseSubjectDir(t *testing.T) {
	d, err := parseSubjectDir("./material/io:1:Investigación de Operaciones")
	if err != nil {
		t.Fatal(err)
	}
	if d.path != "./material/io" || d.id != 1 || d.name != "Investigación de Operaciones" {
		t.Fatalf("parsed = %+v", d)
	}

	if _, err := parseSubjectDir("solo-una-parte"); err == nil {
		t.Fatal("expected error for malformed argument")
	}
	if _, err := parseSubjectDir("dir:abc:name"); err == nil {
		t.Fatal("expected error for non-numeric subject id")
	}
}
