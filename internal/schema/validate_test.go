package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

var validPayload = map[string]any{
	"EXT_SOURCES_MEAN":               0.524,
	"CREDIT_TERM":                    0.05,
	"EXT_SOURCE_3":                   0.535,
	"GOODS_PRICE_CREDIT_PERCENT":     0.9,
	"INSTAL_AMT_PAYMENT_sum":         318619.5,
	"AMT_ANNUITY":                    24903.0,
	"POS_CNT_INSTALMENT_FUTURE_mean": 6.95,
	"DAYS_BIRTH":                     -15750,
	"EXT_SOURCES_WEIGHTED":           1.5,
	"EXT_SOURCE_2":                   0.566,
}

func payloadWith(t *testing.T, overrides map[string]any, drop ...string) []byte {
	t.Helper()

	payload := make(map[string]any, len(validPayload))
	for k, v := range validPayload {
		payload[k] = v
	}
	for k, v := range overrides {
		payload[k] = v
	}
	for _, k := range drop {
		delete(payload, k)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return body
}

func fieldError(t *testing.T, err error, field string) FieldError {
	t.Helper()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	for _, fe := range verr.Fields {
		if fe.Field == field {
			return fe
		}
	}
	t.Fatalf("no error recorded for field %s: %+v", field, verr.Fields)
	return FieldError{}
}

func TestParseAndValidateAccepts(t *testing.T) {
	fv, err := ParseAndValidate(payloadWith(t, nil))
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	if fv.ExtSourcesMean != 0.524 {
		t.Errorf("EXT_SOURCES_MEAN = %v, want 0.524", fv.ExtSourcesMean)
	}
	if fv.DaysBirth != -15750 {
		t.Errorf("DAYS_BIRTH = %v, want -15750", fv.DaysBirth)
	}
	if fv.InstalAmtPaymentSum != 318619.5 {
		t.Errorf("INSTAL_AMT_PAYMENT_sum = %v, want 318619.5", fv.InstalAmtPaymentSum)
	}
}

func TestParseAndValidateMissingFields(t *testing.T) {
	for _, name := range FeatureOrder {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAndValidate(payloadWith(t, nil, name))
			if err == nil {
				t.Fatalf("payload without %s accepted", name)
			}
			if fe := fieldError(t, err, name); fe.Kind != KindMissing {
				t.Errorf("kind = %s, want %s", fe.Kind, KindMissing)
			}
		})
	}
}

func TestParseAndValidateEmptyObject(t *testing.T) {
	_, err := ParseAndValidate([]byte(`{}`))
	if err == nil {
		t.Fatal("empty object accepted")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != NumFeatures {
		t.Errorf("got %d field errors, want %d", len(verr.Fields), NumFeatures)
	}
}

func TestParseAndValidateWrongTypes(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"string for float", "EXT_SOURCES_MEAN", "not_a_number"},
		{"string for int", "DAYS_BIRTH", "yesterday"},
		{"null value", "AMT_ANNUITY", nil},
		{"list value", "CREDIT_TERM", []float64{0.05, 0.10}},
		{"bool value", "EXT_SOURCES_MEAN", true},
		{"object value", "EXT_SOURCE_2", map[string]any{"v": 0.5}},
		{"non-integral days", "DAYS_BIRTH", -15750.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndValidate(payloadWith(t, map[string]any{tt.field: tt.value}))
			if err == nil {
				t.Fatalf("%s = %v accepted", tt.field, tt.value)
			}
			if fe := fieldError(t, err, tt.field); fe.Kind != KindType {
				t.Errorf("kind = %s, want %s", fe.Kind, KindType)
			}
		})
	}
}

func TestParseAndValidateOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value float64
	}{
		{"negative ext source mean", "EXT_SOURCES_MEAN", -0.1},
		{"ext source 3 above 1", "EXT_SOURCE_3", 1.5},
		{"ext source 2 above 1", "EXT_SOURCE_2", 1.1},
		{"positive days birth", "DAYS_BIRTH", 100},
		{"zero days birth", "DAYS_BIRTH", 0},
		{"days birth below minimum", "DAYS_BIRTH", -31000},
		{"negative annuity", "AMT_ANNUITY", -1000},
		{"zero annuity", "AMT_ANNUITY", 0},
		{"goods price above cap", "GOODS_PRICE_CREDIT_PERCENT", 1.6},
		{"installments above cap", "POS_CNT_INSTALMENT_FUTURE_mean", 201},
		{"weighted above cap", "EXT_SOURCES_WEIGHTED", 3.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndValidate(payloadWith(t, map[string]any{tt.field: tt.value}))
			if err == nil {
				t.Fatalf("%s = %v accepted", tt.field, tt.value)
			}
			if fe := fieldError(t, err, tt.field); fe.Kind != KindRange {
				t.Errorf("kind = %s, want %s", fe.Kind, KindRange)
			}
		})
	}
}

func TestParseAndValidateBoundaryValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"zero scores", map[string]any{"EXT_SOURCES_MEAN": 0.0, "EXT_SOURCE_2": 0.0, "EXT_SOURCE_3": 0.0}},
		{"max scores", map[string]any{"EXT_SOURCES_MEAN": 1.0, "EXT_SOURCE_2": 1.0, "EXT_SOURCE_3": 1.0}},
		{"goods price at cap", map[string]any{"GOODS_PRICE_CREDIT_PERCENT": 1.5}},
		{"annuity at cap", map[string]any{"AMT_ANNUITY": 1e6}},
		{"oldest applicant", map[string]any{"DAYS_BIRTH": -30000}},
		{"youngest applicant", map[string]any{"DAYS_BIRTH": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAndValidate(payloadWith(t, tt.overrides)); err != nil {
				t.Errorf("boundary payload rejected: %v", err)
			}
		})
	}
}

func TestParseAndValidateUnknownField(t *testing.T) {
	_, err := ParseAndValidate(payloadWith(t, map[string]any{"EXT_SOURCE_1": 0.5}))
	if err == nil {
		t.Fatal("payload with unknown field accepted")
	}
	if fe := fieldError(t, err, "EXT_SOURCE_1"); fe.Kind != KindUnknown {
		t.Errorf("kind = %s, want %s", fe.Kind, KindUnknown)
	}
}

func TestParseAndValidateMalformedJSON(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1, 2, 3]`, `"predict"`} {
		_, err := ParseAndValidate([]byte(body))
		if err == nil {
			t.Fatalf("body %q accepted", body)
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			t.Errorf("body %q produced a ValidationError, want a plain parse error", body)
		}
	}
}

func TestRowMatchesFeatureOrder(t *testing.T) {
	fv, err := ParseAndValidate(payloadWith(t, nil))
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	row := fv.Row()
	for i, name := range FeatureOrder {
		want, ok := fv.Get(name)
		if !ok {
			t.Fatalf("Get(%s) not supported", name)
		}
		if row[i] != want {
			t.Errorf("row[%d] = %v, want %v (%s)", i, row[i], want, name)
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	var fv FeatureVector
	for i, name := range FeatureOrder {
		want := float64(i + 1)
		if !fv.Set(name, want) {
			t.Fatalf("Set(%s) not supported", name)
		}
		got, ok := fv.Get(name)
		if !ok || got != want {
			t.Errorf("Get(%s) = %v, %v, want %v, true", name, got, ok, want)
		}
	}

	if fv.Set("NOT_A_FEATURE", 1) {
		t.Error("Set accepted an unknown feature")
	}
	if _, ok := fv.Get("NOT_A_FEATURE"); ok {
		t.Error("Get accepted an unknown feature")
	}
}
