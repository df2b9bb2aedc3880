package qdrant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"aurax-orchestrator/internal/knowledge/repository"
	"aurax-orchestrator/internal/model"
	pkgQdrant "aurax-orchestrator/pkg/qdrant"
)

// PayloadText is the payload key holding the document text.
const PayloadText = "text"

// pointNamespace derives deterministic point IDs so re-ingesting a text
// overwrites its previous point.
var pointNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// Search embeds the query and returns matching documents, best first.
func (r *implRepository) Search(ctx context.Context, opt repository.SearchOptions) ([]model.ContextDocument, error) {
	vector, err := r.embedQuery(ctx, opt.Query)
	if err != nil {
		return nil, err
	}

	threshold := opt.ScoreThreshold
	resp, err := r.client.SearchPoints(ctx, r.collection, pkgQdrant.SearchRequest{
		Vector:         vector,
		Limit:          opt.Limit,
		WithPayload:    true,
		ScoreThreshold: &threshold,
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: search failed: %v", logPrefix, err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	docs := make([]model.ContextDocument, 0, len(resp.Result))
	for _, scored := range resp.Result {
		text, ok := scored.Payload[PayloadText].(string)
		if !ok || strings.TrimSpace(text) == "" {
			r.l.Warnf(ctx, "%s: point %v has no text payload", logPrefix, scored.ID)
			continue
		}
		meta := make(map[string]any, len(scored.Payload))
		for k, v := range scored.Payload {
			if k != PayloadText {
				meta[k] = v
			}
		}
		docs = append(docs, model.ContextDocument{Text: text, RelevanceScore: scored.Score, Metadata: meta})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].RelevanceScore > docs[j].RelevanceScore
	})

	r.l.Debugf(ctx, "%s: %d results for %q", logPrefix, len(docs), opt.Query)
	return docs, nil
}

// Upsert embeds and stores documents, skipping empty texts.
func (r *implRepository) Upsert(ctx context.Context, docs []repository.Document) (int, error) {
	valid := make([]repository.Document, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		valid = append(valid, d)
		texts = append(texts, d.Text)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	vectors, err := r.docs.Embed(ctx, texts)
	if err != nil {
		r.l.Errorf(ctx, "%s: failed to embed documents: %v", logPrefix, err)
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vectors) != len(valid) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(valid))
	}

	points := make([]pkgQdrant.Point, 0, len(valid))
	for i, d := range valid {
		payload := make(map[string]any, len(d.Payload)+1)
		for k, v := range d.Payload {
			payload[k] = v
		}
		payload[PayloadText] = d.Text

		points = append(points, pkgQdrant.Point{
			ID:      pointID(d),
			Vector:  vectors[i],
			Payload: payload,
		})
	}

	if err := r.client.UpsertPoints(ctx, r.collection, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		r.l.Errorf(ctx, "%s: failed to upsert points: %v", logPrefix, err)
		return 0, fmt.Errorf("failed to upsert points: %w", err)
	}

	r.l.Infof(ctx, "%s: stored %d documents in %s", logPrefix, len(points), r.collection)
	return len(points), nil
}

// Info describes the collection.
func (r *implRepository) Info(ctx context.Context) (model.KnowledgeInfo, error) {
	info, err := r.client.GetCollection(ctx, r.collection)
	if err != nil {
		return model.KnowledgeInfo{}, fmt.Errorf("failed to get collection %s: %w", r.collection, err)
	}
	return model.KnowledgeInfo{
		Name:        r.collection,
		Status:      info.Status,
		VectorSize:  info.VectorSize,
		Distance:    info.Distance,
		PointsCount: info.PointsCount,
	}, nil
}

// EnsureCollection creates the collection sized for the document embedder.
func (r *implRepository) EnsureCollection(ctx context.Context) (bool, error) {
	created, err := r.client.EnsureCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: r.collection,
		Vectors: pkgQdrant.VectorConfig{
			Size:     r.docs.Dimensions(),
			Distance: r.distance,
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to ensure collection %s: %w", r.collection, err)
	}
	if created {
		r.l.Infof(ctx, "%s: created collection %s", logPrefix, r.collection)
	}
	return created, nil
}

func (r *implRepository) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}
	if v, ok := r.cache.Get(query); ok {
		return v, nil
	}

	vectors, err := r.queries.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		r.l.Errorf(ctx, "%s: failed to embed query: %v", logPrefix, err)
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	r.cache.Add(query, vectors[0])
	return vectors[0], nil
}

func pointID(d repository.Document) string {
	key := d.ID
	if key == "" {
		key = d.Text
	}
	return uuid.NewSHA1(pointNamespace, []byte(key)).String()
}
