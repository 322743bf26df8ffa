package changelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// Format is an output format for the release notes document.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

// ValidFormats returns the supported output formats.
func ValidFormats() []string {
	return []string{string(FormatMarkdown), string(FormatHTML), string(FormatYAML), string(FormatJSON)}
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// RenderOptions controls how a Document is rendered.
type RenderOptions struct {
	Format Format
	// Template overrides the embedded template for markdown and html output.
	Template []byte
}

// Render writes the document to w in the requested format.
// Nothing is written when rendering fails.
func Render(doc *Document, w io.Writer, opts RenderOptions) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	var buf bytes.Buffer
	var err error
	switch opts.Format {
	case FormatMarkdown, "":
		err = renderMarkdown(doc, &buf, opts.Template)
	case FormatHTML:
		err = renderHTML(doc, &buf, opts.Template)
	case FormatYAML:
		err = renderYAML(doc, &buf)
	case FormatJSON:
		err = renderJSON(doc, &buf)
	default:
		err = fmt.Errorf("unknown output format %q", opts.Format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// RenderString is a convenience function that renders to a string.
func RenderString(doc *Document, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := Render(doc, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderMarkdown(doc *Document, w io.Writer, content []byte) error {
	if len(content) == 0 {
		content = DefaultTemplate()
	}

	tmpl, err := template.New("release-notes").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	if err := tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

func renderHTML(doc *Document, w io.Writer, content []byte) error {
	var md bytes.Buffer
	if err := renderMarkdown(doc, &md, content); err != nil {
		return err
	}

	gm := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	if err := gm.Convert(md.Bytes(), w); err != nil {
		return fmt.Errorf("converting markdown to html: %w", err)
	}
	return nil
}

// renderYAML encodes the document as a YAML mapping. Nodes are built by hand
// so section order survives encoding.
func renderYAML(doc *Document, w io.Writer) error {
	sections := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range doc.Sections {
		entries := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range cat.Entries {
			entries.Content = append(entries.Content, scalarNode(e))
		}
		sections.Content = append(sections.Content, scalarNode(cat.Title), entries)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		scalarNode("version"), scalarNode(doc.Version),
		scalarNode("release_date"), scalarNode(doc.ReleaseDate),
		scalarNode("helm_chart_version"), scalarNode(doc.HelmChartVersion),
		scalarNode("k8s_versions"), scalarNode(doc.K8sVersions),
		scalarNode("sections"), sections,
	)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

type jsonDocument struct {
	Version          string     `json:"version"`
	ReleaseDate      string     `json:"release_date"`
	HelmChartVersion string     `json:"helm_chart_version"`
	K8sVersions      string     `json:"k8s_versions"`
	Sections         Categories `json:"sections"`
}

func renderJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jsonDocument(*doc)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// MarshalJSON encodes categories as a JSON object keyed by title, keeping
// presentation order.
func (c Categories) MarshalJSON() ([]byte, error) {
	return marshalOrderedObject(len(c), func(i int) (string, []string) {
		return c[i].Title, c[i].Entries
	})
}

// MarshalJSON encodes sections as a JSON object keyed by heading, in the
// order the headings appear in the body.
func (s Sections) MarshalJSON() ([]byte, error) {
	return marshalOrderedObject(len(s), func(i int) (string, []string) {
		return s[i].Title, s[i].Bullets
	})
}

// marshalOrderedObject writes n key/list pairs as a JSON object. Nil lists
// are encoded as [].
func marshalOrderedObject(n int, pair func(i int) (string, []string)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		title, list := pair(i)
		key, err := marshalNoEscape(title)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []string{}
		}
		value, err := marshalNoEscape(list)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
