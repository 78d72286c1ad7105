package uischema

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstep/pkg/model"
)

//go:embed ui/layout.yaml
var embeddedLayout embed.FS

var (
	defaultOnce   sync.Once
	defaultLayout *Layout
	defaultErr    error
)

type documentFile struct {
	Title           string                 `json:"title" yaml:"title"`
	Acknowledgement string                 `json:"acknowledgement" yaml:"acknowledgement"`
	Steps           []StepConfig           `json:"steps" yaml:"steps"`
	Fields          map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// Default returns the bundled layout. The result is shared; use Merge to
// derive a modified copy.
func Default() *Layout {
	defaultOnce.Do(func() {
		data, err := embeddedLayout.ReadFile("ui/layout.yaml")
		if err != nil {
			defaultErr = err
			return
		}
		defaultLayout, defaultErr = Parse(data, "embedded:ui/layout.yaml")
	})
	if defaultErr != nil {
		// The embed directive guarantees the file exists, so this only fires
		// when it was edited into an invalid state.
		panic(fmt.Sprintf("uischema: default layout: %v", defaultErr))
	}
	return defaultLayout
}

// Load reads a JSON or YAML layout from path and merges it over Default.
// An empty path returns the default layout.
func Load(path string) (*Layout, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("uischema: read %s: %w", trimmed, err)
	}
	layout, err := Parse(data, trimmed)
	if err != nil {
		return nil, err
	}
	return Default().Merge(layout), nil
}

// Parse decodes a layout document, trying JSON first and YAML second.
func Parse(data []byte, source string) (*Layout, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("uischema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("uischema: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	layout := &Layout{
		Source:          source,
		Title:           strings.TrimSpace(doc.Title),
		Acknowledgement: strings.TrimSpace(doc.Acknowledgement),
		Steps:           append([]StepConfig(nil), doc.Steps...),
		Fields:          make(map[model.FieldID]FieldConfig, len(doc.Fields)),
	}
	for key, cfg := range doc.Fields {
		id := model.FieldID(strings.TrimSpace(key))
		if !id.Valid() {
			return nil, fmt.Errorf("uischema: file %s references unknown field %q", source, key)
		}
		layout.Fields[id] = cloneFieldConfig(cfg)
	}
	return layout, nil
}
