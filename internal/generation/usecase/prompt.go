package usecase

import (
	"fmt"
	"strings"

	"aurax-orchestrator/internal/model"
)

const (
	codeDirectTemplate = `You are an expert programming assistant.

Question: %s

Answer with clean, working code and a short explanation.`

	plainDirectTemplate = `Question: %s

Answer as well as you can from your own knowledge.`

	contextHeader = "Relevant context found:\n"

	codeInstructions = `Using the context above where it applies, write clean, well-commented code that solves the request. If the context is not enough, state the assumptions you are making.`

	plainInstructions = `Based on the context above, answer the question clearly and precisely. If the context is not enough to answer fully, use your general knowledge but say when you are doing so.`
)

// FormatPrompt builds the text-backend prompt for a query. It is pure:
// the same inputs always produce the same string.
func FormatPrompt(query string, docs []model.ContextDocument, backend model.Backend) string {
	if len(docs) == 0 {
		if backend == model.BackendCode {
			return fmt.Sprintf(codeDirectTemplate, query)
		}
		return fmt.Sprintf(plainDirectTemplate, query)
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	for i, doc := range docs {
		text := strings.TrimSpace(doc.Text)
		if text == "" {
			continue
		}
		// numbering follows the retriever rank, so skipped docs leave gaps
		fmt.Fprintf(&b, "\n%d. (Relevance: %.2f) %s\n", i+1, doc.RelevanceScore, text)
	}

	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	if backend == model.BackendCode {
		b.WriteString(codeInstructions)
	} else {
		b.WriteString(plainInstructions)
	}
	return b.String()
}

// FormatCodeContext joins document texts with blank lines for the code backend.
func FormatCodeContext(docs []model.ContextDocument) string {
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if t := strings.TrimSpace(doc.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n\n")
}
