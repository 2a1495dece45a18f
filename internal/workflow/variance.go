package workflow

import "math"

// ReasonThresholdPercent is the absolute percentage deviation above which a
// count entry needs a written justification. The comparison is exclusive: a
// deviation of exactly 5% does not require a reason.
const ReasonThresholdPercent = 5.0

// VarianceResult describes how an actual quantity deviates from the expected
// one.
type VarianceResult struct {
	Variance        float64
	VariancePercent float64
	RequiresReason  bool
}

// Evaluate computes the signed variance and percentage deviation between an
// expected and an actual quantity. When expected is zero the percentage is
// defined as zero rather than infinite; under that policy a zero-expected
// line never demands a reason, whatever was counted. Pure function, safe to
// call on every keystroke while the operator edits a quantity.
func Evaluate(expected, actual float64) VarianceResult {
	variance := actual - expected

	var pct float64
	if expected > 0 {
		pct = variance / expected * 100
	}

	return VarianceResult{
		Variance:        variance,
		VariancePercent: pct,
		RequiresReason:  math.Abs(pct) > ReasonThresholdPercent,
	}
}
