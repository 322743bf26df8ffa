package changelog

import (
	"fmt"
	"log/slog"
)

// Assemble builds the output document. Params are copied verbatim.
func Assemble(params Params, categories Categories) *Document {
	return &Document{
		Version:          params.Version,
		ReleaseDate:      params.ReleaseDate,
		HelmChartVersion: params.HelmChartVersion,
		K8sVersions:      params.K8sVersions,
		Sections:         categories,
	}
}

// Build runs the whole transformation on a release body:
// split sections, categorize entries, merge dependency bumps, assemble.
//
// The function is deterministic - given the same input, it produces an
// identical Document.
func Build(body string, params Params) (*Document, error) {
	sections := SplitSections(body)
	slog.Debug("split release body", "sections", len(sections), "bullets", sections.BulletCount())

	categorized, err := Categorize(sections)
	if err != nil {
		return nil, fmt.Errorf("categorizing changes: %w", err)
	}

	if err := MergeDependencies(categorized); err != nil {
		return nil, fmt.Errorf("merging dependency updates: %w", err)
	}

	slog.Debug("assembled release notes", "version", params.Version, "categories", len(categorized.Categories))
	return Assemble(params, categorized.Categories), nil
}
