package model

// ContextDocument is a retrieved snippet used to ground a prompt.
type ContextDocument struct {
	Text           string         `json:"text"`
	RelevanceScore float64        `json:"relevance_score"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Environment names the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// KnowledgeInfo describes the vector collection backing retrieval.
type KnowledgeInfo struct {
	Name        string `json:"name"`
	Status      string `json:"status,omitempty"`
	VectorSize  int    `json:"vector_size"`
	Distance    string `json:"distance"`
	PointsCount int64  `json:"points_count"`
}
