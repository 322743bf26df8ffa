package changelog

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// GoDependenciesLabel is the summary label for Go module bumps.
	GoDependenciesLabel = "Bump Go dependencies"
	// DockerDependenciesLabel is the summary label for container image bumps.
	DockerDependenciesLabel = "Bump Docker dependencies"

	dependenciesMarker = "Dependencies"
)

// skippedSectionMarkers are substrings of section titles that never reach
// the release notes.
var skippedSectionMarkers = []string{"Other Changes", "Documentation", "Maintenance", "Tests"}

var (
	goDependencyMarkers     = []string{"go group", "go_modules group"}
	dockerDependencyMarkers = []string{"Docker image update", "docker group", "docker-images group", "in /build"}
)

// Categorized is the result of routing sections into categories.
type Categorized struct {
	Categories Categories
	// DependencyTitle is the title of the dependency category, or nil when
	// the body has no section containing "Dependencies".
	DependencyTitle *string
	Go              DependencyBucket
	Docker          DependencyBucket
}

// Categorize filters out noise sections and parses every remaining bullet.
// Dependency bumps in the dependency section are held back in the Go and
// Docker buckets; every other entry is formatted as "[N](link) Title".
func Categorize(sections Sections) (*Categorized, error) {
	result := &Categorized{
		Categories: make(Categories, 0, len(sections)),
		Go:         DependencyBucket{Name: "Go"},
		Docker:     DependencyBucket{Name: "Docker"},
	}

	for _, sec := range sections {
		if isSkippedSection(sec.Title) {
			slog.Debug("skipping section", "title", sec.Title, "bullets", len(sec.Bullets))
			continue
		}

		isDeps := strings.Contains(sec.Title, dependenciesMarker)
		if isDeps {
			title := sec.Title
			result.DependencyTitle = &title
			result.Go.PRs = nil
			result.Docker.PRs = nil
		}

		entries := make([]string, 0, len(sec.Bullets))
		for _, bullet := range sec.Bullets {
			entry, err := ParseEntry(bullet)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sec.Title, err)
			}

			if isDeps && routeDependency(entry, result) {
				continue
			}
			entries = append(entries, FormatEntry(entry))
		}

		result.Categories = append(result.Categories, Category{Title: sec.Title, Entries: entries})
	}

	return result, nil
}

// routeDependency places a Go or Docker bump into its bucket and reports
// whether it did so.
func routeDependency(entry ChangeEntry, result *Categorized) bool {
	switch {
	case containsAny(entry.Title, goDependencyMarkers):
		result.Go.PRs = append(result.Go.PRs, DependencyPR{Details: entry.Reference(), Title: GoDependenciesLabel})
		return true
	case containsAny(entry.Title, dockerDependencyMarkers):
		result.Docker.PRs = append(result.Docker.PRs, DependencyPR{Details: entry.Reference(), Title: DockerDependenciesLabel})
		return true
	default:
		return false
	}
}

// FormatEntry renders a change entry as "[N](link) Capitalized title".
func FormatEntry(e ChangeEntry) string {
	return e.Reference() + " " + Capitalize(e.Title)
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isSkippedSection(title string) bool {
	return containsAny(title, skippedSectionMarkers)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
