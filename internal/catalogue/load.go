package catalogue

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajorVersion is the catalogue file format major version this
// build understands.
const SupportedMajorVersion = "v1"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// fileCatalogue mirrors the on-disk catalogue format.
type fileCatalogue struct {
	Version  string        `json:"version"`
	Programs []fileProgram `json:"programs"`
}

type fileProgram struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	TotalCredits       int            `json:"total_credits"`
	TotalYears         int            `json:"total_years"`
	TermsPerYear       int            `json:"terms_per_year"`
	Aliases            []string       `json:"aliases"`
	StandardCategories bool           `json:"standard_categories"`
	Categories         []fileCategory `json:"categories"`
}

type fileCategory struct {
	Name             string   `json:"name"`
	Required         *int     `json:"required"`
	RequiredFraction *float64 `json:"required_fraction"`
	UnlockTerm       int      `json:"unlock_term"`
	LockAfterTerm    *int     `json:"lock_after_term"`
	SubsetOf         string   `json:"subset_of"`
	Group            Group    `json:"group"`
}

// LoadFile reads a YAML or JSON catalogue file.
func LoadFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalogue document. YAML is accepted, and since YAML is a
// superset of JSON, so is JSON. The document is checked against the
// embedded schema, its format version is checked, and the resulting
// programs are validated by NewCatalogue.
func Load(r io.Reader) (*Catalogue, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}

	var parsed any
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	// Re-encode through JSON so numbers and maps have the shapes the
	// schema validator expects.
	asJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("normalize catalogue: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return nil, fmt.Errorf("normalize catalogue: %w", err)
	}

	schema, err := catalogueSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ConfigurationError{Problems: []string{fmt.Sprintf("schema validation failed: %v", err)}}
	}

	var fc fileCatalogue
	if err := json.Unmarshal(asJSON, &fc); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	if err := checkVersion(fc.Version); err != nil {
		return nil, err
	}

	programs := make([]DegreeProgram, 0, len(fc.Programs))
	for _, fp := range fc.Programs {
		programs = append(programs, fp.toProgram())
	}
	return NewCatalogue(programs...)
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return &ConfigurationError{Problems: []string{fmt.Sprintf("invalid catalogue version %q", v)}}
	}
	if semver.Major(v) != SupportedMajorVersion {
		return &ConfigurationError{Problems: []string{
			fmt.Sprintf("unsupported catalogue version %s (want %s.x)", v, SupportedMajorVersion),
		}}
	}
	return nil
}

func (fp fileProgram) toProgram() DegreeProgram {
	termsPerYear := fp.TermsPerYear
	if termsPerYear == 0 {
		termsPerYear = DefaultTermsPerYear
	}

	p := DegreeProgram{
		ID:           fp.ID,
		Name:         fp.Name,
		TotalCredits: fp.TotalCredits,
		TotalYears:   fp.TotalYears,
		TermsPerYear: termsPerYear,
		Aliases:      fp.Aliases,
	}
	if fp.StandardCategories {
		p.Categories = StandardCategories(fp.TotalCredits, fp.TotalYears, termsPerYear)
	}

	for _, fc := range fp.Categories {
		cat := CreditCategory{
			Name:          fc.Name,
			UnlockTerm:    fc.UnlockTerm,
			LockAfterTerm: fc.LockAfterTerm,
			SubsetOf:      fc.SubsetOf,
			Group:         fc.Group,
		}
		switch {
		case fc.Required != nil:
			cat.Required = *fc.Required
		case fc.RequiredFraction != nil:
			cat.Required = int(float64(fp.TotalCredits) * *fc.RequiredFraction)
		}
		p.Categories = overrideCategory(p.Categories, cat)
	}
	return p
}

// overrideCategory replaces the category with the same name, or appends.
func overrideCategory(cats []CreditCategory, c CreditCategory) []CreditCategory {
	for i := range cats {
		if cats[i].Name == c.Name {
			cats[i] = c
			return cats
		}
	}
	return append(cats, c)
}

func catalogueSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse catalogue schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalogue.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add catalogue schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}
