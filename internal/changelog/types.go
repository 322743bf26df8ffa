package changelog

// Section is one "### " heading of the release body and the bullet lines
// found beneath it, in the order they appear.
type Section struct {
	Title   string
	Bullets []string
}

// Sections is an ordered list of sections. Insertion order is the order the
// headings appear in the body and is preserved through rendering.
type Sections []Section

// Get returns the section with the given title.
func (s Sections) Get(title string) (*Section, bool) {
	for i := range s {
		if s[i].Title == title {
			return &s[i], true
		}
	}
	return nil, false
}

// BulletCount returns the total number of bullets across all sections.
func (s Sections) BulletCount() int {
	count := 0
	for _, sec := range s {
		count += len(sec.Bullets)
	}
	return count
}

// ChangeEntry is a single parsed bullet line.
// Number is always the path segment following "pull/" in Link.
type ChangeEntry struct {
	Title  string
	Number string
	Link   string
}

// Reference returns the markdown PR reference, e.g. "[42](https://x/pull/42)".
func (e ChangeEntry) Reference() string {
	return "[" + e.Number + "](" + e.Link + ")"
}

// Category is a changelog section that survived filtering. Entries are fully
// formatted display lines in presentation order.
type Category struct {
	Title   string
	Entries []string
}

// Categories is an ordered list of categories keyed by title.
type Categories []Category

// Get returns the category with the given title.
func (c Categories) Get(title string) (*Category, bool) {
	for i := range c {
		if c[i].Title == title {
			return &c[i], true
		}
	}
	return nil, false
}

// Titles returns the category titles in presentation order.
func (c Categories) Titles() []string {
	titles := make([]string, len(c))
	for i, cat := range c {
		titles[i] = cat.Title
	}
	return titles
}

// DependencyPR is one dependency-bump pull request waiting to be merged into
// a summary line.
type DependencyPR struct {
	// Details is the markdown PR reference, e.g. "[42](https://x/pull/42)".
	Details string
	// Title is the summary label, e.g. "Bump Go dependencies".
	Title string
}

// DependencyBucket accumulates dependency PRs of one kind (Go or Docker).
type DependencyBucket struct {
	Name string
	PRs  []DependencyPR
}

// Params are the caller-supplied values passed verbatim into the Document.
type Params struct {
	Version          string
	HelmChartVersion string
	K8sVersions      string
	ReleaseDate      string
}

// Document is the data handed to the renderer.
type Document struct {
	Version          string
	ReleaseDate      string
	HelmChartVersion string
	K8sVersions      string
	Sections         Categories
}
