package usecase

import (
	"context"
	"strings"

	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/internal/knowledge/repository"
	"aurax-orchestrator/internal/model"
)

// AddDocuments stores documents without chunking. Blank texts are skipped.
func (uc *implUseCase) AddDocuments(ctx context.Context, docs []knowledge.DocumentInput) (knowledge.AddOutput, error) {
	if len(docs) == 0 {
		return knowledge.AddOutput{}, knowledge.ErrNoDocuments
	}

	stored := make([]repository.Document, 0, len(docs))
	for _, d := range docs {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		payload := make(map[string]any, len(d.Metadata)+1)
		for k, v := range d.Metadata {
			payload[k] = v
		}
		if d.Source != "" {
			payload[MetaSource] = d.Source
		}
		stored = append(stored, repository.Document{Text: text, Payload: payload})
	}

	out := knowledge.AddOutput{Skipped: len(docs) - len(stored)}
	if len(stored) == 0 {
		return out, knowledge.ErrNoDocuments
	}

	if _, err := uc.repo.EnsureCollection(ctx); err != nil {
		return out, err
	}
	added, err := uc.repo.Upsert(ctx, stored)
	if err != nil {
		uc.l.Errorf(ctx, "%s: upsert failed: %v", logPrefixAdd, err)
		return out, err
	}
	out.Added = added
	return out, nil
}

// Retrieve searches the knowledge base.
func (uc *implUseCase) Retrieve(ctx context.Context, query string, topK int, scoreThreshold float64) ([]model.ContextDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, knowledge.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = 3
	}

	docs, err := uc.repo.Search(ctx, repository.SearchOptions{
		Query:          query,
		Limit:          topK,
		ScoreThreshold: scoreThreshold,
	})
	if err != nil {
		uc.l.Warnf(ctx, "%s: search failed: %v", logPrefixRetrieve, err)
		return nil, err
	}
	if len(docs) > topK {
		docs = docs[:topK]
	}
	return docs, nil
}

// Info describes the collection backing retrieval.
func (uc *implUseCase) Info(ctx context.Context) (model.KnowledgeInfo, error) {
	return uc.repo.Info(ctx)
}

// EnsureCollection creates the collection when missing.
func (uc *implUseCase) EnsureCollection(ctx context.Context) (bool, error) {
	return uc.repo.EnsureCollection(ctx)
}
