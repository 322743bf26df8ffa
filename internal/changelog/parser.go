package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	headingPrefix = "### "
	bulletPrefix  = "* "

	firstContributionMarker = "made their first contribution"
)

var (
	entryPattern    = regexp.MustCompile(`^(.*) by @.* in (.*)$`)
	prNumberPattern = regexp.MustCompile(`^.*pull/(\d+)$`)
)

// MalformedEntryError is returned when a bullet line does not follow the
// "<title> by @<author> in <pr-link>" format.
type MalformedEntryError struct {
	Line   string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed change entry %q: %s", e.Line, e.Reason)
}

// IsMalformedEntryError returns true if the error is a MalformedEntryError.
func IsMalformedEntryError(err error) bool {
	var me *MalformedEntryError
	return errors.As(err, &me)
}

// SplitSections splits a release body into its "### " sections.
//
// Bullets ("* ") before the first heading and first-contribution notices
// are dropped. A heading that appears twice keeps its first position and
// restarts its bullet list.
func SplitSections(body string) Sections {
	var sections Sections
	current := -1

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), len(body)+1)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		// A bare "### " trims to "###" and is not a heading, so the bullets
		// after it stay in the current section.
		if strings.HasPrefix(trimmed, headingPrefix) {
			current = openSection(&sections, strings.TrimSpace(trimmed[len(headingPrefix):]))
			continue
		}

		if current < 0 {
			continue
		}
		if !strings.HasPrefix(trimmed, bulletPrefix) || strings.Contains(line, firstContributionMarker) {
			continue
		}
		bullet := strings.TrimSpace(trimmed[len(bulletPrefix):])
		sections[current].Bullets = append(sections[current].Bullets, bullet)
	}

	return sections
}

// openSection returns the index of the section with the given title,
// appending a new one or resetting an existing one.
func openSection(sections *Sections, title string) int {
	for i := range *sections {
		if (*sections)[i].Title == title {
			(*sections)[i].Bullets = nil
			return i
		}
	}
	*sections = append(*sections, Section{Title: title})
	return len(*sections) - 1
}

// ParseEntry extracts the change title, PR number and PR link from a bullet
// line that has already been stripped of its "* " marker.
func ParseEntry(line string) (ChangeEntry, error) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return ChangeEntry{}, &MalformedEntryError{
			Line:   line,
			Reason: `expected "<title> by @<author> in <pr-link>"`,
		}
	}

	link := m[2]
	n := prNumberPattern.FindStringSubmatch(link)
	if n == nil {
		return ChangeEntry{}, &MalformedEntryError{
			Line:   line,
			Reason: fmt.Sprintf("pull request link %q does not end in pull/<number>", link),
		}
	}

	return ChangeEntry{Title: m[1], Number: n[1], Link: link}, nil
}
