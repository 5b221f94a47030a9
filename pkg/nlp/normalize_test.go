package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "system design", NormalizeText("  System-Design!! "))
	assert.Equal(t, "", NormalizeText("---"))
}

func TestCleanTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and drops empties", []string{"  go ", "", "   "}, []string{"go"}},
		{"dedupes case-insensitively, keeps first", []string{"Go", "go", "GO", "sql"}, []string{"Go", "sql"}},
		{"collapses inner space", []string{"system   design"}, []string{"system design"}},
		{"keeps order", []string{"b", "a", "c"}, []string{"b", "a", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanTags(tc.in)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}
