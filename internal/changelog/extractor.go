// Package changelog isolates the notes belonging to one release tag out of an
// append-only changelog document.
package changelog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/releasecut/releasecut/internal/domain"
)

// DiffLabel replaces the tag label of the diff-reference line in the
// published notes.
const DiffLabel = "Full commit diff"

var (
	// headerLine matches a release header for a real tag. The unreleased
	// header deliberately does not match; it gets its own check.
	headerLine = regexp.MustCompile(`^## \[\d+\.\d+\.\d+(?:-rc)?\d*\]`)
	// refLine matches the trailing "tag: url" diff-reference block. Release
	// blocks never overlap with it, so it ends the target block too.
	refLine = regexp.MustCompile(`^\[[^\]]+\]: `)
)

// scanState drives the single-pass line scanner. It never moves backwards and
// is not restartable.
type scanState int

const (
	stateSearching scanState = iota
	stateInTargetBlock
	stateDone
)

// Extract scans the changelog lines once and returns the note for tag.
// A block runs from the target's header up to the next header line; an
// unreleased header terminates the block as well, so notes never leak into an
// unreleased section appended directly below the target. A tag without a
// header yields an empty note and no error.
func Extract(r io.Reader, tag string) (domain.ReleaseNote, error) {
	token := "[" + tag + "]"
	diffPrefix := token + ": "

	state := stateSearching
	var title string
	var body []string
	var diffLine string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		// The diff-reference block trails the release blocks, so this runs in
		// every state.
		if strings.HasPrefix(line, diffPrefix) {
			diffLine = DiffLabel + ": " + strings.TrimPrefix(line, diffPrefix)
		}
		switch state {
		case stateSearching:
			if header := headerLine.FindString(line); header != "" && strings.Contains(header, token) {
				title = strings.TrimRight(tag+line[len(header):], " \t")
				state = stateInTargetBlock
			}
		case stateInTargetBlock:
			if isUnreleasedHeader(line) || headerLine.MatchString(line) || refLine.MatchString(line) {
				state = stateDone
				continue
			}
			body = append(body, line)
		case stateDone:
			// Only the diff-reference check above still applies.
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.ReleaseNote{}, fmt.Errorf("failed to scan changelog: %w", err)
	}

	if title == "" {
		return domain.ReleaseNote{}, nil
	}
	text := strings.TrimSpace(strings.Join(body, "\n"))
	if diffLine != "" {
		if text != "" {
			text += "\n\n" + diffLine
		} else {
			text = diffLine
		}
	}
	return domain.ReleaseNote{Title: title, Body: text}, nil
}

// isUnreleasedHeader reports whether the line opens the unreleased section.
func isUnreleasedHeader(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "## [unreleased]")
}
