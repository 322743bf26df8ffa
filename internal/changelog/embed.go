package changelog

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed templates/release-notes.md.tmpl
var embeddedTemplate []byte

// DefaultTemplate returns the embedded release notes template.
// It is a Go text/template executed against a Document.
func DefaultTemplate() []byte {
	return embeddedTemplate
}

// LoadTemplate reads a template from path, or returns the embedded default
// when path is empty.
func LoadTemplate(path string) ([]byte, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("template file %s is empty", path)
	}
	return content, nil
}
