package domain

// Stage is the step of the site-building workflow.
type Stage string

const (
	StageRegistration Stage = "registration"
	StagePreview      Stage = "preview"
	StageEditor       Stage = "editor"
	StagePublish      Stage = "publish"
)

// stageEdges lists the allowed moves out of each stage.
var stageEdges = map[Stage][]Stage{
	StageRegistration: {StagePreview},
	StagePreview:      {StageEditor, StageRegistration},
	StageEditor:       {StagePublish, StagePreview},
	StagePublish:      {StageEditor},
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := stageEdges[s]
	return ok
}

// CanTransition reports whether the workflow may move from one stage to
// another. Staying on the same stage is always allowed.
func CanTransition(from, to Stage) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range stageEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}
