package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Embedder turns a question into a vector before the similarity search.
// The Ollama client satisfies this.
type Embedder interface {
	Embed(ctx context.Context, model, text string) ([]float32, error)
}

// Chunk is one retrieved fragment of course material.
type Chunk struct {
	Text        string
	Score       float32
	SubjectID   int64
	SubjectName string
}

// Payload mirrors the point payload layout written at ingestion time.
// All fields sit at the payload top level: Qdrant filter conditions
// address nested fields only through dot paths, and the search filter
// keys on plain "subject_id".
type Payload struct {
	Text        string `json:"text"`
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	Language    string `json:"language,omitempty"`
}

// Point is one embedded chunk ready for upsert.
type Point struct {
	ID      string    `json:"id"`
	Vector  []float32 `json:"vector"`
	Payload Payload   `json:"payload"`
}

// Client queries a Qdrant collection over its REST API. It owns only
// filter construction and the top-K policy; embedding happens through the
// Embedder and distance ranking stays inside Qdrant.
type Client struct {
	baseURL    string
	collection string
	embedder   Embedder
	embedModel string
	httpClient *http.Client
}

func New(baseURL, collection string, embedder Embedder, embedModel string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		embedder:   embedder,
		embedModel: embedModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type matchValue struct {
	Value int64 `json:"value"`
}

type matchAny struct {
	Any []int64 `json:"any"`
}

type condition struct {
	Key   string `json:"key"`
	Match any    `json:"match"`
}

type searchFilter struct {
	Must []condition `json:"must"`
}

// buildFilter produces the exact-match shape for one subject id and the
// any-of shape for several.
func buildFilter(subjectIDs []int64) searchFilter {
	var match any
	if len(subjectIDs) == 1 {
		match = matchValue{Value: subjectIDs[0]}
	} else {
		match = matchAny{Any: subjectIDs}
	}
	return searchFilter{Must: []condition{{Key: "subject_id", Match: match}}}
}

// searchRequest is the JSON body for POST /collections/{c}/points/search.
type searchRequest struct {
	Vector      []float32    `json:"vector"`
	Limit       int          `json:"limit"`
	Filter      searchFilter `json:"filter"`
	WithPayload bool         `json:"with_payload"`
}

type searchResponse struct {
	Result []struct {
		Score   float32 `json:"score"`
		Payload Payload `json:"payload"`
	} `json:"result"`
}

// Search embeds the question and returns the top-k chunks tagged with any
// of the given subject ids. subjectIDs must be non-empty.
func (c *Client) Search(ctx context.Context, question string, subjectIDs []int64, k int) ([]Chunk, error) {
	if len(subjectIDs) == 0 {
		return nil, fmt.Errorf("search: subjectIDs must not be empty")
	}

	vector, err := c.embedder.Embed(ctx, c.embedModel, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	body, err := json.Marshal(searchRequest{
		Vector:      vector,
		Limit:       k,
		Filter:      buildFilter(subjectIDs),
		WithPayload: true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	chunks := make([]Chunk, len(result.Result))
	for i, r := range result.Result {
		chunks[i] = Chunk{
			Text:        r.Payload.Text,
			Score:       r.Score,
			SubjectID:   r.Payload.SubjectID,
			SubjectName: r.Payload.SubjectName,
		}
	}
	return chunks, nil
}

type upsertRequest struct {
	Points []Point `json:"points"`
}

// Upsert writes embedded chunks into the collection. Used by the ingest
// tool, not by the answer pipeline.
func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	body, err := json.Marshal(upsertRequest{Points: points})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upsert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upsert: unexpected status %d", resp.StatusCode)
	}
	return nil
}

type createCollectionRequest struct {
	Vectors struct {
		Size     int    `json:"size"`
		Distance string `json:"distance"`
	} `json:"vectors"`
}

// EnsureCollection creates the collection with the given vector size when
// it does not exist yet.
func (c *Client) EnsureCollection(ctx context.Context, vectorSize int) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("checking collection: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var cr createCollectionRequest
	cr.Vectors.Size = vectorSize
	cr.Vectors.Distance = "Cosine"
	body, err := json.Marshal(cr)
	if err != nil {
		return err
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err = c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("create collection: unexpected status %d", resp.StatusCode)
	}
	return nil
}
