package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"know", "python", "sql"}, Tokenize("know python sql"))
	assert.Equal(t, []string{"go", "is", "fun"}, Tokenize("Go is a fun!"), "single characters are dropped")
	assert.Empty(t, Tokenize(""))
}

func TestFit_IDF(t *testing.T) {
	m := Fit([]string{"python sql", "python java"})

	require.Equal(t, 3, m.Size())
	assert.InDelta(t, 1.0, m.idf[m.index["python"]], 1e-12)
	assert.InDelta(t, math.Log(1.5)+1, m.idf[m.index["sql"]], 1e-12)
	assert.InDelta(t, math.Log(1.5)+1, m.idf[m.index["java"]], 1e-12)
}

func TestTransform_IsUnitLength(t *testing.T) {
	m := Fit([]string{"python python sql", "python java"})
	v := m.Transform("python python sql")

	var sum float64
	for _, x := range v {
		sum += x * x
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, make([]float64, m.Size()), m.Transform("rust"))
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "know python sql", b: "know python sql", want: 100},
		{name: "identical long", a: "senior python engineer machine learning pipelines python", b: "senior python engineer machine learning pipelines python", want: 100},
		{name: "disjoint", a: "python sql", b: "java html", want: 0},
		{name: "left empty", a: "", b: "python", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "only single letters", a: "a b c", b: "a b c", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.a, tt.b))
		})
	}
}

func TestScore_KnownValue(t *testing.T) {
	// resume: python sql, job: python java
	// idf(python) = 1, idf(sql) = idf(java) = ln(1.5)+1 = w
	// cos = 1 / (1 + w^2)
	w := math.Log(1.5) + 1
	want := 100 / (1 + w*w)

	assert.InDelta(t, want, Score("python sql", "python java"), 1e-6)
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"know python sql", "looking python java developer"},
		{"data analysis pandas numpy", "pandas pandas machine learning"},
		{"go", "rust"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]))
	}
}

func TestScore_PartialOverlapIsBetweenBounds(t *testing.T) {
	got := Score("know python sql", "looking python java developer")
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 100.0)
}

func TestCosine(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 0}))
	assert.Equal(t, 0.0, Cosine([]float64{1}, []float64{1, 2}))
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2}, []float64{2, 4}), 1e-12)
}
