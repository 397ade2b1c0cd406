package models

import "fmt"

// AnalysisResult is the outcome of comparing one resume with one job description.
// Skill lists are sorted; their order carries no meaning.
type AnalysisResult struct {
	Score          float64
	ResumeSkills   []string
	JobSkills      []string
	MatchingSkills []string
	MissingSkills  []string
}

// DisplayScore is the score as shown to users, a whole percent.
func (r AnalysisResult) DisplayScore() string {
	return fmt.Sprintf("%.0f", r.Score)
}

// Progress is the score truncated to an integer, used for progress bars.
func (r AnalysisResult) Progress() int {
	return int(r.Score)
}
