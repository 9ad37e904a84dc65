package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	yamlConverter "github.com/ghodss/yaml"
	"gopkg.in/yaml.v3"

	"symbology/internal/visual"
)

// ErrMissingName is returned when a definition has no name
var ErrMissingName = errors.New("missing required field 'name'")

// definitionFile represents the file structure after YAML-to-JSON conversion
type definitionFile struct {
	Name            string          `json:"name"`
	Field           *string         `json:"field"`
	VisualVariables json.RawMessage `json:"visualVariables"`
}

type definitionEncoder struct {
	Name            string                  `json:"name"`
	Field           *string                 `json:"field,omitempty"`
	VisualVariables []visual.VisualVariable `json:"visualVariables"`
}

// nameRegex validates definition names: alphanumeric, hyphens, underscores
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ParseDefinition parses YAML or JSON content into a Definition
func ParseDefinition(content []byte) (Definition, error) {
	jsonBytes, err := yamlConverter.YAMLToJSON(content)
	if err != nil {
		return Definition{}, fmt.Errorf("invalid YAML: %w", err)
	}

	var df definitionFile
	if err := json.Unmarshal(jsonBytes, &df); err != nil {
		return Definition{}, fmt.Errorf("invalid definition: %w", err)
	}

	if df.Name == "" {
		return Definition{}, ErrMissingName
	}
	if !nameRegex.MatchString(df.Name) {
		return Definition{}, fmt.Errorf("definition name '%s' contains invalid characters", df.Name)
	}

	vars, err := visual.UnmarshalVariables(df.VisualVariables)
	if err != nil {
		return Definition{}, err
	}

	return Definition{
		Name:            df.Name,
		Field:           visual.FromPtr(df.Field),
		VisualVariables: vars,
	}, nil
}

// ToJSON serializes a Definition to pretty-printed JSON
func (d Definition) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d.encoder(), "", "  ")
}

// ToYAML serializes a Definition back to YAML bytes.
// String values stay double-quoted so YAML 1.1 readers keep them as strings.
func (d Definition) ToYAML() ([]byte, error) {
	jsonBytes, err := json.Marshal(d.encoder())
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)

	return yaml.Marshal(&doc)
}

func (d Definition) encoder() *definitionEncoder {
	vars := d.VisualVariables
	if vars == nil {
		vars = []visual.VisualVariable{}
	}
	return &definitionEncoder{
		Name:            d.Name,
		Field:           d.Field.Ptr(),
		VisualVariables: vars,
	}
}

// blockStyle rewrites flow collections as block collections and unquotes mapping keys.
func blockStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode:
		n.Style = 0
		for i, child := range n.Content {
			if i%2 == 0 {
				child.Style = 0
				continue
			}
			blockStyle(child)
		}
	case yaml.SequenceNode:
		n.Style = 0
		for _, child := range n.Content {
			blockStyle(child)
		}
	case yaml.DocumentNode:
		for _, child := range n.Content {
			blockStyle(child)
		}
	}
}

// LoadDefinition reads and parses symbology.yaml from the given directory
func LoadDefinition(dir string) (Definition, error) {
	path := filepath.Join(dir, DefaultFileName)
	return LoadDefinitionFromPath(path)
}

// LoadDefinitionFromPath reads and parses a definition from the given file path
func LoadDefinitionFromPath(path string) (Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Definition{}, err
		}
		return Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}

	return ParseDefinition(content)
}
