// Package report renders analysis results as an HTML page.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/haguru/resumatch/internal/models/dto"
)

const (
	PageTitle = "Resume Match & Skill Suggester"

	PlaceholderNoSkills   = "No skills detected"
	PlaceholderNoMatching = "No matching skills"
	PlaceholderNoMissing  = "No missing skills"

	HeadingResumeSkills   = "Skills in your resume"
	HeadingJobSkills      = "Skills in the job description"
	HeadingMatchingSkills = "Matching skills"
	HeadingMissingSkills  = "Missing skills (suggested to learn)"
)

//go:embed templates/*.html
var templates embed.FS

// Section is one skill list of the page. Placeholder is shown when Skills is empty.
type Section struct {
	Heading     string
	Skills      []string
	Placeholder string
}

type page struct {
	Title    string
	User     string
	Ready    bool
	Missing  []string
	Report   *dto.AnalysisReport
	Sections []Section
}

// Renderer executes the embedded report template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Sections lists the four skill lists of a report in display order.
func Sections(r *dto.AnalysisReport) []Section {
	return []Section{
		{Heading: HeadingResumeSkills, Skills: r.ResumeSkills, Placeholder: PlaceholderNoSkills},
		{Heading: HeadingJobSkills, Skills: r.JobSkills, Placeholder: PlaceholderNoSkills},
		{Heading: HeadingMatchingSkills, Skills: r.MatchingSkills, Placeholder: PlaceholderNoMatching},
		{Heading: HeadingMissingSkills, Skills: r.MissingSkills, Placeholder: PlaceholderNoMissing},
	}
}

// Render writes the page for resp. user may be empty.
func (r *Renderer) Render(w io.Writer, user string, resp dto.AnalysisResponseDTO) error {
	p := page{
		Title:   PageTitle,
		User:    user,
		Ready:   resp.Ready && resp.Report != nil,
		Missing: resp.Missing,
		Report:  resp.Report,
	}
	if p.Ready {
		p.Sections = Sections(resp.Report)
	}

	if err := r.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
