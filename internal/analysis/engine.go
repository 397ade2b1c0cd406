package analysis

import (
	"github.com/haguru/resumatch/internal/models"
	"github.com/haguru/resumatch/internal/similarity"
	"github.com/haguru/resumatch/internal/skills"
	"github.com/haguru/resumatch/internal/textnorm"
)

// Engine compares a resume with a job description.
type Engine struct {
	normalizer *textnorm.Normalizer
	vocabulary skills.Vocabulary
}

// NewEngine creates a new Engine instance.
func NewEngine(normalizer *textnorm.Normalizer, vocabulary skills.Vocabulary) *Engine {
	return &Engine{
		normalizer: normalizer,
		vocabulary: vocabulary,
	}
}

// Analyze normalizes both texts, extracts their skills and scores their similarity.
// Matching skills are in both documents; missing skills are in the job description only.
func (e *Engine) Analyze(resumeText, jobDescriptionText string) models.AnalysisResult {
	cleanResume := e.normalizer.Normalize(resumeText)
	cleanJob := e.normalizer.Normalize(jobDescriptionText)

	resumeSkills := skills.Extract(cleanResume, e.vocabulary)
	jobSkills := skills.Extract(cleanJob, e.vocabulary)

	return models.AnalysisResult{
		Score:          similarity.Score(cleanResume, cleanJob),
		ResumeSkills:   resumeSkills.Sorted(),
		JobSkills:      jobSkills.Sorted(),
		MatchingSkills: resumeSkills.Intersect(jobSkills).Sorted(),
		MissingSkills:  jobSkills.Difference(resumeSkills).Sorted(),
	}
}
