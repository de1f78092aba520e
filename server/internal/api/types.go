package api

import (
	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	DatasetCount int    `json:"dataset_count"`
}

// ContributionResponse is one attribute's share of a score.
type ContributionResponse struct {
	Attribute types.Attribute `json:"attribute"`
	Value     int             `json:"value"`
	Points    int             `json:"points"`
}

// ScoreResponse is the payload for POST /api/v1/score and one element of
// BatchResponse.Results.
type ScoreResponse struct {
	Record        types.WorkloadRecord   `json:"record"`
	WSS           int                    `json:"wss"`
	StressLevel   types.Level            `json:"stress_level"`
	Contributions []ContributionResponse `json:"contributions"`
	Drivers       []Driver               `json:"drivers"`
}

// BatchResponse is the payload for POST /api/v1/score/batch.
type BatchResponse struct {
	Results []ScoreResponse `json:"results"`
}

// LevelBand is the inclusive score range mapped to one level.
type LevelBand struct {
	Level types.Level `json:"level"`
	Min   int         `json:"min"`
	Max   int         `json:"max"`
}

// RulesResponse is the payload for GET /api/v1/rules.
type RulesResponse struct {
	Rules  []stress.Rule `json:"rules"`
	Levels []LevelBand   `json:"levels"`
}

// DatasetResponse describes one stored dataset without its records. It is
// the payload for POST /api/v1/datasets and an element of GET /api/v1/datasets.
type DatasetResponse struct {
	ID        string         `json:"id"`
	Seed      int64          `json:"seed"`
	Records   int            `json:"records"`
	CreatedAt string         `json:"created_at"` // RFC3339
	Summary   stress.Summary `json:"summary"`
}

// DatasetsSnapshot is the payload pushed on /ws/stream.
type DatasetsSnapshot struct {
	GeneratedAt string            `json:"generated_at"` // RFC3339
	Datasets    []DatasetResponse `json:"datasets"`
}

// DatasetDetailResponse is the payload for GET /api/v1/datasets/{id}.
type DatasetDetailResponse struct {
	DatasetResponse
	Data []types.ScoredRecord `json:"data"`
}

// datasetRequest is the body of POST /api/v1/datasets.
type datasetRequest struct {
	Records int    `json:"records"`
	Seed    *int64 `json:"seed"`
}

// errorResponse is a generic JSON error body. The attribute fields are set
// for invalid attribute errors.
type errorResponse struct {
	Error     string          `json:"error"`
	Attribute types.Attribute `json:"attribute,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Index     *int            `json:"index,omitempty"`
}
