// Package service implements the application operations on top of the
// domain repositories
package service

import (
	"regexp"
	"strings"
)

// SplitSearchTerms splits a raw search string on commas and whitespace and
// drops empty pieces
func SplitSearchTerms(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// BuildSearchPattern compiles a case-insensitive alternation over the search
// terms. Terms are matched literally; a blank search returns nil.
func BuildSearchPattern(raw string) *regexp.Regexp {
	terms := SplitSearchTerms(raw)
	if len(terms) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	return regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")")
}

// SplitTagTitles splits a comma separated tag list into trimmed titles,
// dropping empties and keeping only the first occurrence of a duplicate.
// Order is preserved.
func SplitTagTitles(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		titles = append(titles, t)
	}
	return titles
}
