package parser

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harrison/advisor/internal/models"
)

// YAMLParser parses facts files in YAML format:
//
//	name: orders-api
//	defaults:
//	  external_step_timeout_seconds: 45
//	endpoints:
//	  - name: create-order
//	    entities_affected: 3
//	    services_involved: 3
//	    write_shape: validation_rules
//	    entities:
//	      - name: Order
//	      - name: Inventory
//	      - name: Payment
//	        write_shape: complex_invariants
type YAMLParser struct{}

// NewYAMLParser creates a new YAML facts parser
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse reads YAML content and returns the parsed FactsFile
func (p *YAMLParser) Parse(r io.Reader) (*models.FactsFile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var facts models.FactsFile
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&facts); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty facts file")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(facts.Endpoints) == 0 {
		return nil, fmt.Errorf("facts file declares no endpoints")
	}

	return &facts, nil
}
