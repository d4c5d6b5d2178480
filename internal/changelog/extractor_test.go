package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

## [unreleased]

- pending work

## [1.1.0] - 2026-08-01

### Added

- colored diagnostics
- summary comments

## [1.0.0] foo

- initial release

[unreleased]: https://x/compare/v1.1.0..HEAD
[1.1.0]: https://x/compare/v1.0.0..v1.1.0
[1.0.0]: https://x/compare/a..b
`

func TestExtract(t *testing.T) {
	t.Run("Should capture title and body for the target tag", func(t *testing.T) {
		note, err := Extract(strings.NewReader(sampleChangelog), "1.1.0")
		require.NoError(t, err)
		assert.Equal(t, "1.1.0 - 2026-08-01", note.Title)
		assert.Contains(t, note.Body, "### Added")
		assert.Contains(t, note.Body, "- colored diagnostics")
		assert.Contains(t, note.Body, "- summary comments")
	})
	t.Run("Should stop at the next release header", func(t *testing.T) {
		note, err := Extract(strings.NewReader(sampleChangelog), "1.1.0")
		require.NoError(t, err)
		assert.NotContains(t, note.Body, "initial release")
	})
	t.Run("Should rewrite the diff reference line and append it", func(t *testing.T) {
		note, err := Extract(strings.NewReader(sampleChangelog), "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0 foo", note.Title)
		assert.Contains(t, note.Body, "- initial release")
		assert.Contains(t, note.Body, "Full commit diff: https://x/compare/a..b")
		assert.NotContains(t, note.Body, "[1.0.0]:")
	})
	t.Run("Should never capture unreleased content", func(t *testing.T) {
		note, err := Extract(strings.NewReader(sampleChangelog), "1.1.0")
		require.NoError(t, err)
		assert.NotContains(t, note.Body, "pending work")
	})
	t.Run("Should stop at an unreleased header directly below the target", func(t *testing.T) {
		log := strings.Join([]string{
			"## [1.0.0] foo",
			"- only line",
			"## [unreleased]",
			"- leaked line",
			"",
			"[1.0.0]: https://x/compare/a..b",
		}, "\n")
		note, err := Extract(strings.NewReader(log), "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0 foo", note.Title)
		assert.Contains(t, note.Body, "- only line")
		assert.NotContains(t, note.Body, "leaked line")
		assert.Contains(t, note.Body, "Full commit diff: https://x/compare/a..b")
	})
	t.Run("Should trim leading and trailing blank lines from body", func(t *testing.T) {
		log := strings.Join([]string{
			"## [1.0.0]",
			"",
			"- middle",
			"",
			"## [0.9.0]",
		}, "\n")
		note, err := Extract(strings.NewReader(log), "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "- middle", note.Body)
	})
	t.Run("Should return empty note for unknown tag without error", func(t *testing.T) {
		note, err := Extract(strings.NewReader(sampleChangelog), "9.9.9")
		require.NoError(t, err)
		assert.True(t, note.IsEmpty())
	})
	t.Run("Should handle rc tags in headers and references", func(t *testing.T) {
		log := strings.Join([]string{
			"## [2.0.0-rc1] - first candidate",
			"- candidate body",
			"",
			"[2.0.0-rc1]: https://x/compare/v1.9.0..v2.0.0-rc1",
		}, "\n")
		note, err := Extract(strings.NewReader(log), "2.0.0-rc1")
		require.NoError(t, err)
		assert.Equal(t, "2.0.0-rc1 - first candidate", note.Title)
		assert.Contains(t, note.Body, "Full commit diff: https://x/compare/v1.9.0..v2.0.0-rc1")
	})
	t.Run("Should not resume after the target block ends", func(t *testing.T) {
		log := strings.Join([]string{
			"## [1.0.0] first",
			"- first body",
			"## [0.9.0]",
			"- older body",
			"## [1.0.0] duplicate",
			"- duplicate body",
		}, "\n")
		note, err := Extract(strings.NewReader(log), "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0 first", note.Title)
		assert.Contains(t, note.Body, "- first body")
		assert.NotContains(t, note.Body, "duplicate body")
	})
}
