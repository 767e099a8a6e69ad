package frames

// Stage identifies a step of the extraction pipeline. Stages only advance;
// there is no branching back and no retry.
type Stage int

const (
	StageLoaded Stage = iota
	StageCropped
	StageTransformed
	StageBinned
	StageSmoothed
	StageNormalized
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageLoaded:
		return "loaded"
	case StageCropped:
		return "cropped"
	case StageTransformed:
		return "transformed"
	case StageBinned:
		return "binned"
	case StageSmoothed:
		return "smoothed"
	case StageNormalized:
		return "normalized"
	case StageFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
