package dto

import "github.com/haguru/resumatch/internal/models"

// AnalysisResponseDTO is returned by the analyze route. When Ready is false the
// analysis did not run and Missing names the uploads that are still needed.
type AnalysisResponseDTO struct {
	Ready   bool            `json:"ready"`
	Missing []string        `json:"missing,omitempty"`
	Report  *AnalysisReport `json:"report,omitempty"`
}

type AnalysisReport struct {
	Score          float64  `json:"score"`
	DisplayScore   string   `json:"display_score"`
	Progress       int      `json:"progress"`
	MatchingCount  int      `json:"matching_count"`
	MissingCount   int      `json:"missing_count"`
	ResumeSkills   []string `json:"resume_skills"`
	JobSkills      []string `json:"job_description_skills"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// NewAnalysisReport converts a result into its wire form. Lists are never null.
func NewAnalysisReport(result models.AnalysisResult) *AnalysisReport {
	return &AnalysisReport{
		Score:          result.Score,
		DisplayScore:   result.DisplayScore(),
		Progress:       result.Progress(),
		MatchingCount:  len(result.MatchingSkills),
		MissingCount:   len(result.MissingSkills),
		ResumeSkills:   nonNil(result.ResumeSkills),
		JobSkills:      nonNil(result.JobSkills),
		MatchingSkills: nonNil(result.MatchingSkills),
		MissingSkills:  nonNil(result.MissingSkills),
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
