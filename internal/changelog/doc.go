// Package changelog turns a bot-generated GitHub release body into a
// categorized changelog ready for a release announcement.
//
// This package implements:
//   - Splitting the release body into ordered "### " sections
//   - Extracting "<title> by @<author> in <pr-link>" change entries
//   - Dropping noise categories and routing dependency bumps into buckets
//   - Collapsing Go and Docker dependency bumps into single summary lines
//   - Assembling and rendering the output document (markdown, html, yaml, json)
//
// The pipeline is pure and single pass: the same body and parameters always
// produce the same Document.
package changelog
