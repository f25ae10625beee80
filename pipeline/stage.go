package pipeline

import "github.com/mkowalik/docgram"

// Stage identifies a candidate's position in the per-candidate state
// machine: Discovered → Fetched → Rendered → Published → Committed, or
// Skipped from any state.
type Stage string

// Stages of the per-candidate state machine.
const (
	StageDiscovered Stage = "discovered"
	StageFetched    Stage = "fetched"
	StageRendered   Stage = "rendered"
	StagePublished  Stage = "published"
	StageCommitted  Stage = "committed"
	StageSkipped    Stage = "skipped"
)

// ReasonAlreadyPosted marks the non-error skip of a candidate whose
// identity is already in the posted store.
const ReasonAlreadyPosted = "already_posted"

// Result is the terminal record for one candidate.
type Result struct {
	Ref      docgram.DocumentReference
	Identity string

	// Stage is the terminal stage: StageCommitted or StageSkipped.
	Stage Stage

	// FailedAt is the stage whose work failed, for skipped candidates.
	FailedAt Stage

	// Reason is the error code (or ReasonAlreadyPosted) for skipped
	// candidates.
	Reason string

	// RemoteID is the publishing platform's identifier, for committed
	// candidates.
	RemoteID string
}

// Committed reports whether the candidate reached the terminal success state.
func (r *Result) Committed() bool {
	return r.Stage == StageCommitted
}

// Summary aggregates one run.
type Summary struct {
	Source     string // name of the listing source that won the fallback
	Discovered int
	Published  int
	Skipped    int
	Results    []Result
}
