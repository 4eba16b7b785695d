package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind classifies a single field violation so callers can distinguish them
// programmatically.
type Kind string

const (
	KindMissing Kind = "missing"
	KindType    Kind = "type"
	KindRange   Kind = "range"
	KindUnknown Kind = "unknown"
)

// FieldError describes one violation in the request payload.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation found in a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		f := e.Fields[0]
		return fmt.Sprintf("invalid feature payload: %s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("invalid feature payload: %d field errors", len(e.Fields))
}

func (e *ValidationError) add(field string, kind Kind, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Kind: kind, Message: message})
}

// bounds describes the plausible range for one feature.
type bounds struct {
	min, max     float64
	exclusiveMin bool
	exclusiveMax bool
	integer      bool
}

func (b bounds) contains(v float64) bool {
	if v < b.min || (b.exclusiveMin && v == b.min) {
		return false
	}
	if v > b.max || (b.exclusiveMax && v == b.max) {
		return false
	}
	return true
}

func (b bounds) describe() string {
	lo, hi := "[", "]"
	if b.exclusiveMin {
		lo = "("
	}
	if b.exclusiveMax {
		hi = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, b.min, b.max, hi)
}

// Valid ranges per feature. External-source scores live in [0, 1]; DAYS_BIRTH
// is a negative age in days relative to the application date.
var featureBounds = map[string]bounds{
	"EXT_SOURCES_MEAN":               {min: 0, max: 1},
	"CREDIT_TERM":                    {min: 0, max: 1},
	"EXT_SOURCE_3":                   {min: 0, max: 1},
	"GOODS_PRICE_CREDIT_PERCENT":     {min: 0, max: 1.5},
	"INSTAL_AMT_PAYMENT_sum":         {min: 0, max: 1e8},
	"AMT_ANNUITY":                    {min: 0, max: 1e6, exclusiveMin: true},
	"POS_CNT_INSTALMENT_FUTURE_mean": {min: 0, max: 200},
	"DAYS_BIRTH":                     {min: -30000, max: 0, exclusiveMax: true, integer: true},
	"EXT_SOURCES_WEIGHTED":           {min: 0, max: 3},
	"EXT_SOURCE_2":                   {min: 0, max: 1},
}

// ParseAndValidate decodes a JSON request body into a FeatureVector, enforcing
// that exactly the ten required feature keys are present, each with a numeric
// value inside its plausible range. All violations are collected into a single
// *ValidationError. A body that is not a JSON object at all is reported as a
// plain error so callers can distinguish malformed JSON from field violations.
func ParseAndValidate(body []byte) (*FeatureVector, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}

	verr := &ValidationError{}
	var fv FeatureVector

	for _, name := range FeatureOrder {
		msg, ok := raw[name]
		if !ok {
			verr.add(name, KindMissing, "required feature is missing")
			continue
		}

		var value float64
		if err := json.Unmarshal(msg, &value); err != nil {
			verr.add(name, KindType, "value must be a number")
			continue
		}

		b := featureBounds[name]
		if b.integer && value != math.Trunc(value) {
			verr.add(name, KindType, "value must be an integer")
			continue
		}
		if !b.contains(value) {
			verr.add(name, KindRange, fmt.Sprintf("value %g outside allowed range %s", value, b.describe()))
			continue
		}

		fv.Set(name, value)
	}

	for name := range raw {
		if !IsFeature(name) {
			verr.add(name, KindUnknown, "unexpected field")
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &fv, nil
}
