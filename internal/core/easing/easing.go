// Package easing maps countdown progress to the values renderers draw.
//
// Urgency follows a proportional-threshold curve: a slow linear ramp to 0.10
// over the first 90% of the interval, a steeper linear ramp to 0.25 until 95%,
// then a cubic ease-in to 1.0 at expiry.
package easing

const (
	calmEnd     = 0.90
	warningEnd  = 0.95
	calmLevel   = 0.10
	warnLevel   = 0.25
	finalWeight = 1 - warnLevel
)

// Fraction returns remaining/total clamped to [0, 1].
func Fraction(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp01(float64(remaining) / float64(total))
}

// Urgency returns a value in [0, 1] that grows as the interval runs out.
// It is 0 with the full interval left and 1 at expiry.
func Urgency(remaining, total int) float64 {
	if total <= 0 {
		return 1
	}
	progress := 1 - Fraction(remaining, total)

	switch {
	case progress < calmEnd:
		return progress / calmEnd * calmLevel
	case progress < warningEnd:
		return calmLevel + (progress-calmEnd)/(warningEnd-calmEnd)*(warnLevel-calmLevel)
	default:
		t := (progress - warningEnd) / (1 - warningEnd)
		return clamp01(warnLevel + t*t*t*finalWeight)
	}
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
