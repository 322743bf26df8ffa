package changelog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// EmptyDependencyBucketError is returned when the dependency category exists
// but one of the Go or Docker buckets has no pull requests to summarize.
type EmptyDependencyBucketError struct {
	Bucket   string
	Category string
}

func (e *EmptyDependencyBucketError) Error() string {
	return fmt.Sprintf("no %s dependency updates found in %q", e.Bucket, e.Category)
}

// IsEmptyDependencyBucketError returns true if the error is an EmptyDependencyBucketError.
func IsEmptyDependencyBucketError(err error) bool {
	var ee *EmptyDependencyBucketError
	return errors.As(err, &ee)
}

// MergeDependencies appends the Docker and Go summary lines to the
// dependency category and reverses it, so the Go summary comes first,
// the Docker summary second, and the remaining entries follow in reverse
// order. It does nothing when there is no dependency category.
func MergeDependencies(c *Categorized) error {
	if c.DependencyTitle == nil {
		slog.Debug("no dependency category, skipping merge")
		return nil
	}
	title := *c.DependencyTitle

	cat, ok := c.Categories.Get(title)
	if !ok {
		return fmt.Errorf("dependency category %q not found", title)
	}

	goSummary, err := Summarize(c.Go)
	if err != nil {
		return withCategory(err, title)
	}
	dockerSummary, err := Summarize(c.Docker)
	if err != nil {
		return withCategory(err, title)
	}

	slog.Debug("merged dependency updates",
		"category", title, "go", len(c.Go.PRs), "docker", len(c.Docker.PRs))

	cat.Entries = append(cat.Entries, dockerSummary, goSummary)
	slices.Reverse(cat.Entries)
	return nil
}

// Summarize collapses a bucket into one line. References are separated by
// ", " except the last pair, which is separated by " &":
//
//	[1](u1), [2](u2) & [3](u3) Bump Go dependencies
func Summarize(b DependencyBucket) (string, error) {
	if len(b.PRs) == 0 {
		return "", &EmptyDependencyBucketError{Bucket: b.Name}
	}

	var sb strings.Builder
	for _, pr := range b.PRs {
		sb.WriteString(pr.Details)
		sb.WriteString(", ")
	}
	summary := strings.TrimRight(sb.String(), ", ") + " " + b.PRs[0].Title

	if i := strings.LastIndex(summary, ","); i >= 0 {
		summary = summary[:i] + " &" + summary[i+1:]
	}
	return summary, nil
}

func withCategory(err error, title string) error {
	var ee *EmptyDependencyBucketError
	if errors.As(err, &ee) {
		ee.Category = title
	}
	return err
}
