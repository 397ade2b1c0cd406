package interfaces

import "github.com/haguru/resumatch/internal/models"

type Analyzer interface {
	Analyze(resumeText, jobDescriptionText string) models.AnalysisResult
}
