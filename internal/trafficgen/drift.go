package trafficgen

import (
	"math"

	"credscore/internal/schema"
)

// DriftableFeatures lists the features with a defined drift transform, in the
// order the transforms were designed: a credit bureau scoring change, a shift
// toward younger applicants, and annuity inflation.
var DriftableFeatures = []string{"EXT_SOURCE_2", "DAYS_BIRTH", "AMT_ANNUITY"}

// applyDrift shifts one feature away from the reference distribution.
// Returns false for features without a drift transform.
func applyDrift(fv *schema.FeatureVector, feature string) bool {
	switch feature {
	case "EXT_SOURCE_2":
		// Mean shifted down by 0.15, clamped to the score range.
		fv.ExtSource2 = math.Min(1, math.Max(0, fv.ExtSource2-0.15))
	case "DAYS_BIRTH":
		// Shifted +3000 days toward younger applicants, still negative.
		fv.DaysBirth = min(-1, fv.DaysBirth+3000)
	case "AMT_ANNUITY":
		// Increased 20%, rounded to cents.
		fv.AmtAnnuity = math.Round(fv.AmtAnnuity*1.20*100) / 100
	default:
		return false
	}
	return true
}

// isDriftable reports whether feature has a drift transform.
func isDriftable(feature string) bool {
	for _, f := range DriftableFeatures {
		if f == feature {
			return true
		}
	}
	return false
}
