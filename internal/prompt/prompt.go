package prompt

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed lenspoet.yaml
var lensPoetYAML []byte

// Template is a fixed instruction block that gets the user's keyword appended
type Template struct {
	Name         string `yaml:"name"`
	KeywordLabel string `yaml:"keywordLabel"`
	Instructions string `yaml:"instructions"`
}

// LensPoet returns the built-in template that asks for the four-part Markdown report
func LensPoet() (*Template, error) {
	return Parse(lensPoetYAML)
}

// Parse decodes a template from YAML
func Parse(data []byte) (*Template, error) {
	t := &Template{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	if t.Instructions == "" {
		return nil, fmt.Errorf("prompt template %q has no instructions", t.Name)
	}
	if t.KeywordLabel == "" {
		return nil, fmt.Errorf("prompt template %q has no keyword label", t.Name)
	}
	return t, nil
}

// Render concatenates the instructions with the keyword line. The keyword is
// inserted verbatim.
func (t *Template) Render(vibeKeyword string) string {
	return t.Instructions + "\n\n" + t.KeywordLabel + ": " + vibeKeyword
}
