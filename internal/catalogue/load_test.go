package catalogue

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: v1.2.0
programs:
  - id: btech
    name: B.Tech
    total_credits: 160
    total_years: 4
    aliases: [BTECH_AI]
    standard_categories: true
    categories:
      - name: RI
        required: 6
        unlock_term: 9
        group: experiential
  - id: design
    name: B.Des
    total_credits: 120
    total_years: 3
    terms_per_year: 2
    categories:
      - name: Studio
        required_fraction: 0.5
        unlock_term: 1
        group: core
      - name: Portfolio
        required: 4
        unlock_term: 3
        lock_after_term: 5
`

func TestLoad_YAML(t *testing.T) {
	c, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	btech, err := c.Program("BTECH_AI")
	require.NoError(t, err)
	assert.Equal(t, 16, btech.TotalTerms())
	assert.Len(t, btech.Categories, 9)

	ri, ok := btech.Category(CategoryRI)
	require.True(t, ok)
	assert.Equal(t, 6, ri.Required, "file categories override the standard set")

	design, err := c.Program("design")
	require.NoError(t, err)
	assert.Equal(t, 6, design.TotalTerms())
	studio, ok := design.Category("Studio")
	require.True(t, ok)
	assert.Equal(t, 60, studio.Required)
	portfolio, _ := design.Category("Portfolio")
	require.NotNil(t, portfolio.LockAfterTerm)
	assert.Equal(t, 5, *portfolio.LockAfterTerm)
}

func TestLoad_JSON(t *testing.T) {
	doc := `{"version":"v1","programs":[{"id":"x","name":"X","total_credits":40,"total_years":1,"categories":[{"name":"Core","required":40,"unlock_term":1}]}]}`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	p, err := c.Program("x")
	require.NoError(t, err)
	assert.Equal(t, 4, p.TermsPerYear)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing programs", `version: v1`},
		{"unknown field", "version: v1\nprograms:\n  - {id: a, name: A, total_credits: 10, total_years: 1, colour: red}"},
		{"negative credits", "version: v1\nprograms:\n  - {id: a, name: A, total_credits: -10, total_years: 1}"},
		{"both required forms", "version: v1\nprograms:\n  - id: a\n    name: A\n    total_credits: 10\n    total_years: 1\n    categories:\n      - {name: c, required: 1, required_fraction: 0.5, unlock_term: 1}"},
		{"bad group", "version: v1\nprograms:\n  - id: a\n    name: A\n    total_credits: 10\n    total_years: 1\n    categories:\n      - {name: c, required: 1, unlock_term: 1, group: sports}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "want *ConfigurationError, got %T: %v", err, err)
		})
	}
}

func TestLoad_VersionGate(t *testing.T) {
	body := "\nprograms:\n  - {id: a, name: A, total_credits: 10, total_years: 1, standard_categories: true}"

	_, err := Load(strings.NewReader("version: v2.0.0" + body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalogue version")

	_, err = Load(strings.NewReader("version: one" + body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalogue version")
}

func TestLoad_SemanticErrors(t *testing.T) {
	doc := "version: v1\nprograms:\n  - id: a\n    name: A\n    total_credits: 10\n    total_years: 1\n    categories:\n      - {name: c, required: 1, unlock_term: 3, lock_after_term: 2}"
	_, err := Load(strings.NewReader(doc))
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "after LockAfterTerm")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("version: [unclosed"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Programs(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
