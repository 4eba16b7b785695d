// Package schema defines the credit feature schema and its validation rules.
package schema

// NumFeatures is the number of input features the scoring artifact expects.
const NumFeatures = 10

// FeatureOrder is the artifact's fixed column order. Inference input must be
// arranged in exactly this order.
var FeatureOrder = [NumFeatures]string{
	"EXT_SOURCES_MEAN",
	"CREDIT_TERM",
	"EXT_SOURCE_3",
	"GOODS_PRICE_CREDIT_PERCENT",
	"INSTAL_AMT_PAYMENT_sum",
	"AMT_ANNUITY",
	"POS_CNT_INSTALMENT_FUTURE_mean",
	"DAYS_BIRTH",
	"EXT_SOURCES_WEIGHTED",
	"EXT_SOURCE_2",
}

// FeatureVector holds one validated set of input features. Immutable once
// constructed on the serving path; constructed per request.
type FeatureVector struct {
	ExtSourcesMean             float64 `json:"EXT_SOURCES_MEAN"`
	CreditTerm                 float64 `json:"CREDIT_TERM"`
	ExtSource3                 float64 `json:"EXT_SOURCE_3"`
	GoodsPriceCreditPercent    float64 `json:"GOODS_PRICE_CREDIT_PERCENT"`
	InstalAmtPaymentSum        float64 `json:"INSTAL_AMT_PAYMENT_sum"`
	AmtAnnuity                 float64 `json:"AMT_ANNUITY"`
	PosCntInstalmentFutureMean float64 `json:"POS_CNT_INSTALMENT_FUTURE_mean"`
	DaysBirth                  int     `json:"DAYS_BIRTH"`
	ExtSourcesWeighted         float64 `json:"EXT_SOURCES_WEIGHTED"`
	ExtSource2                 float64 `json:"EXT_SOURCE_2"`
}

// Row arranges the feature values in the artifact's column order.
func (fv FeatureVector) Row() [NumFeatures]float64 {
	return [NumFeatures]float64{
		fv.ExtSourcesMean,
		fv.CreditTerm,
		fv.ExtSource3,
		fv.GoodsPriceCreditPercent,
		fv.InstalAmtPaymentSum,
		fv.AmtAnnuity,
		fv.PosCntInstalmentFutureMean,
		float64(fv.DaysBirth),
		fv.ExtSourcesWeighted,
		fv.ExtSource2,
	}
}

// Get returns the value of the named feature. The second return is false for
// unknown feature names.
func (fv FeatureVector) Get(name string) (float64, bool) {
	switch name {
	case "EXT_SOURCES_MEAN":
		return fv.ExtSourcesMean, true
	case "CREDIT_TERM":
		return fv.CreditTerm, true
	case "EXT_SOURCE_3":
		return fv.ExtSource3, true
	case "GOODS_PRICE_CREDIT_PERCENT":
		return fv.GoodsPriceCreditPercent, true
	case "INSTAL_AMT_PAYMENT_sum":
		return fv.InstalAmtPaymentSum, true
	case "AMT_ANNUITY":
		return fv.AmtAnnuity, true
	case "POS_CNT_INSTALMENT_FUTURE_mean":
		return fv.PosCntInstalmentFutureMean, true
	case "DAYS_BIRTH":
		return float64(fv.DaysBirth), true
	case "EXT_SOURCES_WEIGHTED":
		return fv.ExtSourcesWeighted, true
	case "EXT_SOURCE_2":
		return fv.ExtSource2, true
	}
	return 0, false
}

// Set assigns the named feature. DAYS_BIRTH is truncated to an integer; the
// validator rejects non-integral values before this point. Returns false for
// unknown feature names.
func (fv *FeatureVector) Set(name string, value float64) bool {
	switch name {
	case "EXT_SOURCES_MEAN":
		fv.ExtSourcesMean = value
	case "CREDIT_TERM":
		fv.CreditTerm = value
	case "EXT_SOURCE_3":
		fv.ExtSource3 = value
	case "GOODS_PRICE_CREDIT_PERCENT":
		fv.GoodsPriceCreditPercent = value
	case "INSTAL_AMT_PAYMENT_sum":
		fv.InstalAmtPaymentSum = value
	case "AMT_ANNUITY":
		fv.AmtAnnuity = value
	case "POS_CNT_INSTALMENT_FUTURE_mean":
		fv.PosCntInstalmentFutureMean = value
	case "DAYS_BIRTH":
		fv.DaysBirth = int(value)
	case "EXT_SOURCES_WEIGHTED":
		fv.ExtSourcesWeighted = value
	case "EXT_SOURCE_2":
		fv.ExtSource2 = value
	default:
		return false
	}
	return true
}

// IsFeature reports whether name is one of the required feature keys.
func IsFeature(name string) bool {
	_, ok := featureBounds[name]
	return ok
}
