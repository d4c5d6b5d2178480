package orchestrator

// State is one position of the release pipeline. The machine only ever moves
// forward; a failed transition leaves it where it was and nothing already
// applied is rolled back.
type State string

const (
	StateIdle                  State = "idle"
	StateVersionBumped         State = "version_bumped"
	StateDependentFilesUpdated State = "dependent_files_updated"
	StateChangelogRegenerated  State = "changelog_regenerated"
	StateCommitted             State = "committed"
	StatePushed                State = "pushed"
	StateTagged                State = "tagged"
	StatePublished             State = "published"
	StateDone                  State = "done"
)
