package entity

type AnalysisMode string

const (
	ModeCreator  AnalysisMode = "creator"
	ModeAcademic AnalysisMode = "academic"
	ModeHybrid   AnalysisMode = "hybrid"
	ModeSocial   AnalysisMode = "social"
)

// LayerCount is the number of behavioral-scoring dimensions the backend
// returns per analysis.
const LayerCount = 8

type LayerResult struct {
	Layer    string  `json:"layer"`
	Score    float64 `json:"score"` // 0..10
	Feedback string  `json:"feedback"`
}

// AnalysisResult is immutable once received from the scoring service.
type AnalysisResult struct {
	OverallScore    float64       `json:"overallScore"` // 0..10
	Layers          []LayerResult `json:"layers"`
	Summary         string        `json:"summary"`
	Recommendations []string      `json:"recommendations"`
}
