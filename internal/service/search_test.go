package service

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSplitSearchTerms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "  \t ", []string{}},
		{"single", "python", []string{"python"}},
		{"commas", "go,python,rust", []string{"go", "python", "rust"}},
		{"spaces", "go python", []string{"go", "python"}},
		{"mixed separators", "go, python  rust,", []string{"go", "python", "rust"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSearchTerms(tt.raw))
		})
	}
}

func TestBuildSearchPattern(t *testing.T) {
	t.Run("blank gives nil", func(t *testing.T) {
		assert.Nil(t, BuildSearchPattern(""))
		assert.Nil(t, BuildSearchPattern("  ,  "))
	})

	t.Run("case insensitive alternation", func(t *testing.T) {
		p := BuildSearchPattern("go, python")
		assert.True(t, p.MatchString("I love Python"))
		assert.True(t, p.MatchString("GOLANG"))
		assert.False(t, p.MatchString("rust"))
	})

	t.Run("metacharacters are literal", func(t *testing.T) {
		p := BuildSearchPattern("c++ a.b")
		assert.True(t, p.MatchString("learning c++ today"))
		assert.True(t, p.MatchString("a.b"))
		assert.False(t, p.MatchString("aXb"))
	})
}

func TestSplitTagTitles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "go", []string{"go"}},
		{"trims", " go , python ", []string{"go", "python"}},
		{"drops empties", "go,,python,", []string{"go", "python"}},
		{"dedup keeps first", "go,python,go", []string{"go", "python"}},
		{"whitespace only piece", "go, ,python", []string{"go", "python"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTagTitles(tt.raw))
		})
	}
}

func TestSplitTagTitlesProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no empties and no duplicates", prop.ForAll(
		func(parts []string) bool {
			titles := SplitTagTitles(strings.Join(parts, ","))
			seen := map[string]bool{}
			for _, title := range titles {
				if title == "" || title != strings.TrimSpace(title) {
					return false
				}
				if seen[title] {
					return false
				}
				seen[title] = true
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("every output title came from the input", prop.ForAll(
		func(parts []string) bool {
			inputs := map[string]bool{}
			for _, p := range parts {
				inputs[strings.TrimSpace(p)] = true
			}
			for _, title := range SplitTagTitles(strings.Join(parts, ",")) {
				if !inputs[title] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
