package normalize

import "math"

// TargetScale is the canonical rating scale all source ratings normalize onto.
const TargetScale = 5

// DetectScale infers the rating scale of a raw value. An explicit positive
// scale hint wins. Otherwise the value is classified by magnitude: ≤5 → 5,
// ≤10 → 10, ≤20 → 20, ≤100 → 100. Absent or out-of-range values default to 5.
//
// The ≤5 tie-break is an assumption about the upstream data, not a verified
// contract: a bare value of 5 is indistinguishable from "5 out of 10" when no
// hint is given, and we side with the smaller scale.
func DetectScale(value, hint *float64) float64 {
	if hint != nil && *hint > 0 {
		return *hint
	}
	if value == nil {
		return TargetScale
	}
	switch v := *value; {
	case v <= 5:
		return 5
	case v <= 10:
		return 10
	case v <= 20:
		return 20
	case v <= 100:
		return 100
	default:
		return TargetScale
	}
}

// ToTarget converts a rating from the given scale onto the target scale,
// rounded to two decimals and clamped to [0, target]. Returns nil when the
// value is absent or the scale is non-positive or NaN. Clamping keeps source
// values outside their declared scale from escaping the canonical range.
func ToTarget(value *float64, scale, target float64) *float64 {
	if value == nil || math.IsNaN(*value) || scale <= 0 || math.IsNaN(scale) {
		return nil
	}
	normalized := round2(*value * target / scale)
	if normalized < 0 {
		normalized = 0
	} else if normalized > target {
		normalized = target
	}
	return &normalized
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
