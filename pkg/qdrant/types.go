package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"`
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point is a vector with its payload.
// Qdrant accepts only UUID strings or unsigned integers as IDs.
type Point struct {
	ID      any            `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// SearchRequest is the request for similarity search.
type SearchRequest struct {
	Vector         []float32      `json:"vector"`
	Limit          int            `json:"limit"`
	WithPayload    bool           `json:"with_payload"`
	ScoreThreshold *float64       `json:"score_threshold,omitempty"`
	Filter         map[string]any `json:"filter,omitempty"`
}

// SearchResponse contains search results, best match first.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search hit. ID is a string for UUIDs and a float64 for numeric IDs.
type ScoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// DeletePointsRequest is the request to delete points.
type DeletePointsRequest struct {
	Points []string `json:"points"`
}

// CollectionInfo summarizes GET /collections/{name}.
type CollectionInfo struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	VectorSize  int    `json:"vector_size"`
	Distance    string `json:"distance"`
	PointsCount int64  `json:"points_count"`
}

type apiEnvelope struct {
	Status any `json:"status"`
	Result struct {
		Status      string `json:"status"`
		PointsCount int64  `json:"points_count"`
		Config      struct {
			Params struct {
				Vectors VectorConfig `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
}
