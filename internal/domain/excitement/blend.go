package excitement

const (
	MaxElapsedMinutes = 120

	blendStartBase = 0.80
	blendMidBase   = 0.50
	blendEndBase   = 0.20
	blendStep      = 30.0
)

// BlendWeights returns how much the baseline and the live bonus count at a given minute.
// The baseline share falls linearly from 0.80 to 0.50 over the first half hour, to 0.20
// by the hour mark, and holds there through extra time. The two weights always sum to 1.
func BlendWeights(minute int) (baseWeight, liveWeight float64) {
	m := float64(clampMinute(minute))

	switch {
	case m <= blendStep:
		baseWeight = blendStartBase - (blendStartBase-blendMidBase)*m/blendStep
	case m <= 2*blendStep:
		baseWeight = blendMidBase - (blendMidBase-blendEndBase)*(m-blendStep)/blendStep
	default:
		baseWeight = blendEndBase
	}

	return baseWeight, 1 - baseWeight
}

func clampMinute(minute int) int {
	switch {
	case minute < 0:
		return 0
	case minute > MaxElapsedMinutes:
		return MaxElapsedMinutes
	default:
		return minute
	}
}
