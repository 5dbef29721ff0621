// Package prompt holds the instruction sent alongside the image. The text lives
// in a YAML asset so it can be versioned and swapped without touching the relay.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Slot is replaced by the product name on every occurrence.
const Slot = "{{productName}}"

const defaultMIMEType = "image/jpeg"

//go:embed verify.yaml
var defaultAsset []byte

type Template struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	MIMEType string `yaml:"mime_type"`
	Text     string `yaml:"template"`
}

// Default returns the embedded template.
func Default() (*Template, error) {
	return Parse(defaultAsset)
}

// Load reads a template from path, or the embedded one when path is empty.
func Load(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt %s: %w", path, err)
	}
	t, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("prompt %s: %w", path, err)
	}
	return t, nil
}

func Parse(b []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("bad prompt yaml: %w", err)
	}
	t.Text = strings.TrimSpace(t.Text)
	if t.Text == "" {
		return nil, fmt.Errorf("prompt template is empty")
	}
	if !strings.Contains(t.Text, Slot) {
		return nil, fmt.Errorf("prompt template has no %s slot", Slot)
	}
	if strings.TrimSpace(t.MIMEType) == "" {
		t.MIMEType = defaultMIMEType
	}
	return &t, nil
}

// Render substitutes productName verbatim.
func (t *Template) Render(productName string) string {
	return strings.ReplaceAll(t.Text, Slot, productName)
}
