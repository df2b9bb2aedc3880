package http

import "aurax-orchestrator/internal/knowledge"

const (
	maxURLs      = 20
	maxDocuments = 500
	maxTopK      = 20
)

type documentsReq struct {
	Documents []knowledge.DocumentInput `json:"documents" binding:"required"`
}

func (r documentsReq) validate() error {
	if len(r.Documents) > maxDocuments {
		return errTooManyDocuments
	}
	return nil
}

type textReq struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
	Title  string `json:"title"`
}

func (r textReq) toInput() knowledge.IngestTextInput {
	source := r.Source
	if source == "" {
		source = "manual"
	}
	return knowledge.IngestTextInput{Text: r.Text, Source: source, Title: r.Title}
}

type urlsReq struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

func (r urlsReq) validate() error {
	if len(r.URLs) > maxURLs {
		return errTooManyURLs
	}
	return nil
}

type searchReq struct {
	Query          string   `json:"query" binding:"required"`
	TopK           int      `json:"top_k"`
	ScoreThreshold *float64 `json:"score_threshold"`
}

func (r searchReq) validate() error {
	if r.TopK < 0 || r.TopK > maxTopK {
		return errInvalidTopK
	}
	if r.ScoreThreshold != nil && (*r.ScoreThreshold < 0 || *r.ScoreThreshold > 1) {
		return errInvalidThreshold
	}
	return nil
}

func (r searchReq) params() (int, float64) {
	topK, threshold := r.TopK, 0.5
	if topK == 0 {
		topK = 3
	}
	if r.ScoreThreshold != nil {
		threshold = *r.ScoreThreshold
	}
	return topK, threshold
}
