package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/edutor/tutoria/internal/providers/llm"
	"github.com/edutor/tutoria/internal/providers/vectorstore"
)

const (
	chunkSize    = 500
	chunkOverlap = 50
	batchSize    = 32
)

// subjectDir is one "path:id:name" argument: a directory of course
// material plus the subject it belongs to.
type subjectDir struct {
	path string
	id   int64
	name string
}

func main() {
	var (
		qdrantURL  = flag.String("qdrant", "http://localhost:6333", "Qdrant base URL")
		ollamaURL  = flag.String("ollama", "http://localhost:11434", "Ollama base URL for embeddings")
		collection = flag.String("collection", "tutor_demo", "Qdrant collection name")
		embedModel = flag.String("embed-model", "nomic-embed-text", "embedding model name")
		language   = flag.String("language", "es", "language tag stored with each chunk")
	)
	flag.Parse()
	start := time.Now()

	if flag.NArg() == 0 {
		log.Fatal("usage: ingest [flags] dir:subject_id:subject_name ...")
	}

	dirs := make([]subjectDir, 0, flag.NArg())
	for _, arg := range flag.Args() {
		d, err := parseSubjectDir(arg)
		if err != nil {
			log.Fatalf("bad argument %q: %v", arg, err)
		}
		dirs = append(dirs, d)
	}

	embedder := llm.NewOllama(*ollamaURL, "")
	store := vectorstore.New(*qdrantURL, *collection, embedder, *embedModel)
	ctx := context.Background()

	total := 0
	ensured := false
	for _, d := range dirs {
		texts, err := loadDir(d.path)
		if err != nil {
			log.Fatalf("loading %s: %v", d.path, err)
		}

		var points []vectorstore.Point
		for file, text := range texts {
			for _, chunk := range chunkText(text, chunkSize, chunkOverlap) {
				vector, err := embedder.Embed(ctx, *embedModel, chunk)
				if err != nil {
					log.Fatalf("embedding chunk from %s: %v", file, err)
				}
				if !ensured {
					if err := store.EnsureCollection(ctx, len(vector)); err != nil {
						log.Fatalf("ensuring collection: %v", err)
					}
					ensured = true
				}
				points = append(points, vectorstore.Point{
					ID:     uuid.NewString(),
					Vector: vector,
					Payload: vectorstore.Payload{
						Text:        chunk,
						SubjectID:   d.id,
						SubjectName: d.name,
						Language:    *language,
					},
				})
				if len(points) >= batchSize {
					if err := store.Upsert(ctx, points); err != nil {
						log.Fatalf("upserting: %v", err)
					}
					total += len(points)
					points = points[:0]
				}
			}
		}
		if len(points) > 0 {
			if err := store.Upsert(ctx, points); err != nil {
				log.Fatalf("upserting: %v", err)
			}
			total += len(points)
		}
		log.Printf("subject %d (%s): ingested from %s", d.id, d.name, d.path)
	}

	log.Printf("done: %d chunks in %s", total, time.Since(start).Round(time.Second))
}

func parseSubjectDir(arg string) (subjectDir, error) {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 {
		return subjectDir{}, fmt.Errorf("expected dir:subject_id:subject_name")
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return subjectDir{}, fmt.Errorf("invalid subject_id: %w", err)
	}
	return subjectDir{path: parts[0], id: id, name: parts[2]}, nil
}

// loadDir reads every .txt, .md and .pdf file directly under dir and
// returns filename to plain text.
func loadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	texts := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			texts[e.Name()] = string(data)
		case ".pdf":
			text, err := loadPDF(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			texts[e.Name()] = text
		}
	}
	return texts, nil
}

func loadPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// chunkText splits text into overlapping windows of at most size runes.
// The overlap keeps sentences that straddle a boundary retrievable from
// both sides.
func chunkText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
