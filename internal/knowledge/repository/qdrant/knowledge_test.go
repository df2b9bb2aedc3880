package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurax-orchestrator/internal/knowledge/repository"
	"aurax-orchestrator/pkg/log"
	pkgQdrant "aurax-orchestrator/pkg/qdrant"
)

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int { return 3 }

type fakeQdrant struct {
	mu       sync.Mutex
	upserted []pkgQdrant.Point
	search   pkgQdrant.SearchRequest
	created  bool
	exists   bool
}

func (f *fakeQdrant) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points"):
		var req pkgQdrant.UpsertPointsRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.upserted = append(f.upserted, req.Points...)
		_, _ = w.Write([]byte(`{"status":"ok","result":{}}`))
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/points/search"):
		_ = json.NewDecoder(r.Body).Decode(&f.search)
		_, _ = w.Write([]byte(`{"status":"ok","result":[
			{"id":"a","score":0.61,"payload":{"text":"second","source":"doc-b"}},
			{"id":"b","score":0.92,"payload":{"text":"first","source":"doc-a","chunk_index":0}},
			{"id":"c","score":0.75,"payload":{"source":"no-text"}}
		]}`))
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/collections/"):
		if !f.exists {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":{"error":"not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","result":{"status":"green","points_count":7,
			"config":{"params":{"vectors":{"size":3,"distance":"Cosine"}}}}}`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/collections/"):
		f.created = true
		f.exists = true
		_, _ = w.Write([]byte(`{"status":"ok","result":true}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestRepo(t *testing.T, fq *fakeQdrant, docs, queries repository.Embedder) *implRepository {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(fq.handler))
	t.Cleanup(srv.Close)
	return New(log.NewNop(), pkgQdrant.NewClient(srv.URL), docs, queries, Options{CollectionName: "kb"})
}

func TestSearch(t *testing.T) {
	fq := &fakeQdrant{}
	queries := &fakeEmbedder{}
	repo := newTestRepo(t, fq, &fakeEmbedder{}, queries)

	docs, err := repo.Search(context.Background(), repository.SearchOptions{Query: "go", Limit: 3, ScoreThreshold: 0.3})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "first", docs[0].Text)
	assert.Equal(t, 0.92, docs[0].RelevanceScore)
	assert.Equal(t, "doc-a", docs[0].Metadata["source"])
	assert.NotContains(t, docs[0].Metadata, PayloadText)
	assert.Equal(t, "second", docs[1].Text)

	require.NotNil(t, fq.search.ScoreThreshold)
	assert.Equal(t, 0.3, *fq.search.ScoreThreshold)
	assert.Equal(t, 3, fq.search.Limit)
	assert.True(t, fq.search.WithPayload)

	_, err = repo.Search(context.Background(), repository.SearchOptions{Query: "go", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, queries.calls, "query embedding should be cached")
}

func TestSearchEmbedFailure(t *testing.T) {
	repo := newTestRepo(t, &fakeQdrant{}, &fakeEmbedder{}, &fakeEmbedder{err: errors.New("quota")})

	_, err := repo.Search(context.Background(), repository.SearchOptions{Query: "go", Limit: 3})
	assert.ErrorContains(t, err, "quota")

	_, err = repo.Search(context.Background(), repository.SearchOptions{Query: "  ", Limit: 3})
	assert.Error(t, err)
}

func TestUpsert(t *testing.T) {
	fq := &fakeQdrant{}
	repo := newTestRepo(t, fq, &fakeEmbedder{}, nil)

	n, err := repo.Upsert(context.Background(), []repository.Document{
		{ID: "page#0", Text: "hello world", Payload: map[string]any{"source": "page"}},
		{Text: "   "},
		{Text: "standalone"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, fq.upserted, 2)

	first := fq.upserted[0]
	assert.Equal(t, "hello world", first.Payload["text"])
	assert.Equal(t, "page", first.Payload["source"])
	assert.Len(t, first.Vector, 3)

	// IDs are deterministic
	n, err = repo.Upsert(context.Background(), []repository.Document{{ID: "page#0", Text: "changed"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, first.ID, fq.upserted[2].ID)
	assert.NotEqual(t, first.ID, fq.upserted[1].ID)
}

func TestUpsertNothing(t *testing.T) {
	fq := &fakeQdrant{}
	docs := &fakeEmbedder{}
	repo := newTestRepo(t, fq, docs, nil)

	n, err := repo.Upsert(context.Background(), []repository.Document{{Text: ""}})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, docs.calls)
}

func TestEnsureCollectionAndInfo(t *testing.T) {
	fq := &fakeQdrant{}
	repo := newTestRepo(t, fq, &fakeEmbedder{}, nil)

	_, err := repo.Info(context.Background())
	assert.ErrorIs(t, err, pkgQdrant.ErrCollectionNotFound)

	created, err := repo.EnsureCollection(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureCollection(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kb", info.Name)
	assert.Equal(t, 3, info.VectorSize)
	assert.Equal(t, int64(7), info.PointsCount)
	assert.Equal(t, "green", info.Status)
}
