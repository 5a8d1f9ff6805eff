package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseProblemSpec parses a problem spec from YAML (JSON is accepted as a YAML subset).
// Unknown fields are rejected so that typos in item fields do not silently become zero weights.
func ParseProblemSpec(data []byte) (*ProblemSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec ProblemSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty problem spec", ErrInvalidValue)
		}
		return nil, fmt.Errorf("failed to parse problem spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadProblemSpec reads and parses a problem spec file.
// When the spec has no name, the file name without extension is used.
func LoadProblemSpec(path string) (*ProblemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem spec: %w", err)
	}
	spec, err := ParseProblemSpec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if spec.Name == "" {
		base := filepath.Base(path)
		spec.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return spec, nil
}
