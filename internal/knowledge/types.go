package knowledge

// DocumentInput is a document to store. Metadata is merged into the stored payload.
type DocumentInput struct {
	Text     string         `json:"text"`
	Source   string         `json:"source,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AddOutput reports how many documents were stored.
type AddOutput struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// IngestTextInput is raw text to chunk and store.
type IngestTextInput struct {
	Text   string
	Source string
	Title  string
}

// IngestResult summarizes one ingested source.
type IngestResult struct {
	Source        string `json:"source"`
	Title         string `json:"title"`
	ContentLength int    `json:"content_length"`
	Chunks        int    `json:"chunks"`
	Added         int    `json:"added"`
}

// IngestFailure is a source that could not be ingested.
type IngestFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// IngestURLsOutput aggregates a multi-URL ingestion.
type IngestURLsOutput struct {
	Succeeded   []IngestResult  `json:"succeeded"`
	Failed      []IngestFailure `json:"failed"`
	TotalChunks int             `json:"total_chunks"`
}
