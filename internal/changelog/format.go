package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// sectionMarker is how a section is flagged in the sections listing.
type sectionMarker struct {
	icon  string
	note  string
	paint *color.Color
}

var (
	keptMarker       = sectionMarker{icon: "✓", paint: color.New(color.FgGreen)}
	skippedMarker    = sectionMarker{icon: "✗", note: " (skipped)", paint: color.New(color.Faint)}
	dependencyMarker = sectionMarker{icon: "~", note: " (dependencies)", paint: color.New(color.FgBlue)}
)

const listItemPrefix = "  - "

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatSections writes the splitter output to w, marking which sections are
// dropped and which one is the dependency category.
func FormatSections(sections Sections, w io.Writer, opts FormatOptions) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "No sections found.")
		return err
	}

	var sb strings.Builder
	width := resolveWidth(opts.MaxWidth)
	for i, sec := range sections {
		if i > 0 {
			sb.WriteByte('\n')
		}
		formatSection(&sb, sec, opts.Plain, width)
	}
	fmt.Fprintf(&sb, "\n(%d sections, %d entries)\n", len(sections), sections.BulletCount())

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatSection(sb *strings.Builder, sec Section, plain bool, width int) {
	m := markerFor(sec.Title)

	if plain {
		fmt.Fprintf(sb, "### %s%s\n", sec.Title, m.note)
		for _, bullet := range sec.Bullets {
			sb.WriteString(listItemPrefix + bullet + "\n")
		}
		return
	}

	fmt.Fprintf(sb, "%s %s%s\n", m.paint.Sprint(m.icon), m.paint.Sprint(sec.Title), m.note)
	for _, bullet := range sec.Bullets {
		wrapped := wrapText(bullet, width-len(listItemPrefix), strings.Repeat(" ", len(listItemPrefix)))
		sb.WriteString(listItemPrefix + m.paint.Sprint(wrapped) + "\n")
	}
}

func markerFor(title string) sectionMarker {
	if isSkippedSection(title) {
		return skippedMarker
	}
	if strings.Contains(title, dependenciesMarker) {
		return dependencyMarker
	}
	return keptMarker
}

// resolveWidth returns maxWidth, or the stdout terminal width, or 80.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText greedily fills lines of at most maxWidth terminal columns,
// splitting words wider than a line on rune boundaries. Continuation lines
// start with indent.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	var lines []string
	line, lineWidth := "", 0
	for _, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		for wordWidth > maxWidth {
			if line != "" {
				lines = append(lines, line)
				line, lineWidth = "", 0
			}
			var head string
			head, word = cutAtWidth(word, maxWidth)
			lines = append(lines, head)
			wordWidth = runewidth.StringWidth(word)
		}
		switch {
		case word == "":
		case line == "":
			line, lineWidth = word, wordWidth
		case lineWidth+1+wordWidth <= maxWidth:
			line += " " + word
			lineWidth += 1 + wordWidth
		default:
			lines = append(lines, line)
			line, lineWidth = word, wordWidth
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"+indent)
}

// cutAtWidth splits word after the last rune that fits in width columns.
// The head always holds at least one rune.
func cutAtWidth(word string, width int) (head, tail string) {
	used := 0
	for i, r := range word {
		w := runewidth.RuneWidth(r)
		if used+w > width && i > 0 {
			return word[:i], word[i:]
		}
		used += w
	}
	return word, ""
}
