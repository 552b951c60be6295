package models

// Default pipeline stages, in board order.
const (
	StageDesign      = "Design"
	StageDevelopment = "Development"
	StageTesting     = "Testing"
	StageCompleted   = "Completed"
)

// DefaultStages returns the stage names every fresh registry starts with.
func DefaultStages() []string {
	return []string{StageDesign, StageDevelopment, StageTesting, StageCompleted}
}

// StageCount is one dashboard bucket.
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}
