package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testVocabulary = NewVocabulary([]string{
	"python", "java", "sql", "html", "css", "javascript",
	"machine learning", "data analysis", "nlp",
	"tensorflow", "pytorch", "flask", "streamlit",
	"numpy", "pandas", "git",
})

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single words",
			text: "know python sql",
			want: []string{"python", "sql"},
		},
		{
			name: "multi word skill as phrase",
			text: "experience machine learning pipelines",
			want: []string{"machine learning"},
		},
		{
			name: "split phrase does not match",
			text: "machine vision deep learning",
			want: []string{},
		},
		{
			name: "substring inside longer token",
			text: "tailwindcss automation github",
			want: []string{"css", "git"},
		},
		{
			name: "javascript also yields java",
			text: "javascript developer",
			want: []string{"java", "javascript"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text, testVocabulary).Sorted())
		})
	}
}

func TestExtract_AlwaysFindsPython(t *testing.T) {
	for _, text := range []string{"python", "pythonista", "cpython expert", "a b python c"} {
		assert.True(t, Extract(text, testVocabulary).Contains("python"), "text %q", text)
	}
}

func TestSet_IntersectAndDifference(t *testing.T) {
	resume := NewSet("python", "sql")
	job := NewSet("python", "java")

	assert.Equal(t, []string{"python"}, resume.Intersect(job).Sorted())
	assert.Equal(t, []string{"java"}, job.Difference(resume).Sorted())
	assert.Equal(t, []string{"sql"}, resume.Difference(job).Sorted())
	assert.Empty(t, NewSet().Intersect(job))
	assert.NotNil(t, NewSet().Sorted())
}

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary([]string{" Python ", "python", "", "Machine Learning", "C++", "node.js"})

	assert.Equal(t, Vocabulary{"python", "machine learning", "c++", "node.js"}, v)
	assert.Equal(t, []string{"c++", "node.js"}, v.Unmatchable())
	assert.Empty(t, testVocabulary.Unmatchable())
}
