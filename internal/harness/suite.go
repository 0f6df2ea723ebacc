package harness

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed suite.cue
var suiteSchema string

// Suite lists fixture sizes to check in one invocation.
type Suite struct {
	// Name identifies the suite in summaries. Defaults to the file name.
	Name string `yaml:"name"`

	// Binary is the binary under test. Relative paths are resolved against
	// the suite file's directory. A binary given on the command line wins.
	Binary string `yaml:"binary,omitempty"`

	// Sizes are run in order.
	Sizes []int `yaml:"sizes"`
}

// LoadSuite reads a suite YAML file, validates it against the embedded CUE
// schema and decodes it.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	if err := validateSuiteSchema(path, data); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if suite.Name == "" {
		base := filepath.Base(path)
		suite.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	if suite.Binary != "" && !filepath.IsAbs(suite.Binary) && filepath.Base(suite.Binary) != suite.Binary {
		suite.Binary = filepath.Join(filepath.Dir(path), suite.Binary)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// validateSuiteSchema checks raw YAML against the #Suite definition.
func validateSuiteSchema(path string, data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(suiteSchema, cue.Filename("suite.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("suite schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Suite"))
	if err := cueyaml.Validate(data, def); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// validateSuite checks decoded fields.
func validateSuite(s *Suite) error {
	if len(s.Sizes) == 0 {
		return errors.New("sizes list is required and must be non-empty")
	}
	for i, size := range s.Sizes {
		if err := ValidateSize(size); err != nil {
			return fmt.Errorf("sizes[%d]: %w", i, err)
		}
	}
	return nil
}

// CaseResult is the outcome of one size within a suite.
type CaseResult struct {
	Size   int     `json:"size"`
	Pass   bool    `json:"pass"`
	Error  string  `json:"error,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// SuiteResult aggregates a suite run.
type SuiteResult struct {
	Name   string       `json:"name"`
	Binary string       `json:"binary"`
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// RunSuite runs every size in order. A failing size does not stop the
// suite. binary overrides Suite.Binary when non-empty.
//
// The report callback, if non-nil, is invoked after each case.
func (h *Harness) RunSuite(ctx context.Context, binary string, s *Suite, report func(CaseResult)) (*SuiteResult, error) {
	if binary == "" {
		binary = s.Binary
	}
	if binary == "" {
		return nil, errors.New("no binary under test: pass one on the command line or set binary in the suite")
	}

	out := &SuiteResult{
		Name:   s.Name,
		Binary: binary,
		Cases:  make([]CaseResult, 0, len(s.Sizes)),
		Total:  len(s.Sizes),
	}

	for _, size := range s.Sizes {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		result, err := h.Run(ctx, binary, size)
		c := CaseResult{Size: size, Pass: err == nil, Result: result}
		if err != nil {
			c.Error = err.Error()
			out.Failed++
		} else {
			out.Passed++
		}
		out.Cases = append(out.Cases, c)

		if report != nil {
			report(c)
		}
	}

	return out, nil
}
