package domain

// ReleaseNote is the publishable content extracted for one release tag.
// An empty Title means no notes were found for the tag.
type ReleaseNote struct {
	Title string
	Body  string
}

// IsEmpty reports whether the extractor found no block for the tag.
func (n ReleaseNote) IsEmpty() bool {
	return n.Title == "" && n.Body == ""
}

// Release holds all metadata produced by one orchestration run.

type Release struct {
	OldVersion *Version
	NewVersion *Version
	Component  Component
	TagName    string
	Note       ReleaseNote
}
