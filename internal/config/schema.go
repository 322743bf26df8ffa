package config

import (
	"slices"
	"strings"
)

// ValueKind is the type of value a configuration key accepts.
type ValueKind string

const (
	KindInt      ValueKind = "int"
	KindDuration ValueKind = "duration"
	KindString   ValueKind = "string"
	KindEnum     ValueKind = "enum"
)

// KeySchema documents one configuration key for `config keys`.
type KeySchema struct {
	Path        string
	Kind        ValueKind
	Choices     []string // only for KindEnum
	Description string
	Env         string // conventional variable besides RELEASE_NOTES_*, if any
	Sensitive   bool   // redacted by `config show`
}

// KnownKeys maps every configuration key to its schema.
var KnownKeys = indexSchemas(
	KeySchema{Path: "github.org", Kind: KindString, Env: "GITHUB_ORG",
		Description: "Organization owning the repository"},
	KeySchema{Path: "github.repo", Kind: KindString, Env: "GITHUB_REPO",
		Description: "Repository publishing the releases"},
	KeySchema{Path: "github.token", Kind: KindString, Env: "GITHUB_TOKEN", Sensitive: true,
		Description: "API token; unauthenticated requests are rate limited"},
	KeySchema{Path: "github.api_url", Kind: KindString,
		Description: "REST API base URL"},
	KeySchema{Path: "github.per_page", Kind: KindInt,
		Description: "Releases fetched per page (1-100)"},
	KeySchema{Path: "github.timeout", Kind: KindDuration,
		Description: "Per-request timeout (e.g., 30s, 1m)"},
	KeySchema{Path: "format", Kind: KindEnum, Choices: []string{"markdown", "html", "yaml", "json"},
		Description: "Output format"},
	KeySchema{Path: "template", Kind: KindString,
		Description: "Custom text/template file replacing the built-in template"},
)

func indexSchemas(schemas ...KeySchema) map[string]KeySchema {
	index := make(map[string]KeySchema, len(schemas))
	for _, s := range schemas {
		index[s.Path] = s
	}
	return index
}

// ErrUnknownKey is returned for a key missing from KnownKeys.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema looks path up in KnownKeys.
func GetKeySchema(path string) (KeySchema, error) {
	if schema, ok := KnownKeys[path]; ok {
		return schema, nil
	}
	return KeySchema{}, ErrUnknownKey{Key: path}
}

// SortedKeys returns all known key paths in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EnvVarName returns the RELEASE_NOTES_* variable overriding a key.
func EnvVarName(path string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(path, ".", "__"))
}

// TypeHint is the kind of the key, with the choices of an enum:
// "enum (markdown|html|yaml|json)".
func (s KeySchema) TypeHint() string {
	if s.Kind != KindEnum {
		return string(s.Kind)
	}
	return string(s.Kind) + " (" + strings.Join(s.Choices, "|") + ")"
}
