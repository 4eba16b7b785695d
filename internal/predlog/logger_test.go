package predlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credscore/internal/models"
	"credscore/internal/schema"
)

func testFeatures() schema.FeatureVector {
	return schema.FeatureVector{
		ExtSourcesMean:             0.524,
		CreditTerm:                 0.05,
		ExtSource3:                 0.535,
		GoodsPriceCreditPercent:    0.9,
		InstalAmtPaymentSum:        318619.5,
		AmtAnnuity:                 24903.0,
		PosCntInstalmentFutureMean: 6.95,
		DaysBirth:                  -15750,
		ExtSourcesWeighted:         1.5,
		ExtSource2:                 0.566,
	}
}

func testEntry() models.PredictionLogEntry {
	return models.PredictionLogEntry{
		ID:                 uuid.New(),
		Timestamp:          time.Now().UTC(),
		InputFeatures:      testFeatures(),
		Prediction:         0,
		ProbabilityDefault: 0.034271,
		CreditDecision:     "approved",
	}
}

func readEntries(t *testing.T, path string) []models.PredictionLogEntry {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer f.Close()

	var entries []models.PredictionLogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e models.PredictionLogEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("decode log line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan log file: %v", err)
	}
	return entries
}

// failingSink always errors, standing in for an unreachable database.
type failingSink struct{}

func (failingSink) Append(context.Context, models.PredictionLogEntry) error {
	return errors.New("connection refused")
}

func TestFileSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "predictions.jsonl")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer sink.Close()

	first := testEntry()
	second := testEntry()
	second.Prediction = 1
	second.ProbabilityDefault = 0.42
	second.CreditDecision = "denied"

	for _, e := range []models.PredictionLogEntry{first, second} {
		if err := sink.Append(context.Background(), e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != first.ID || entries[1].ID != second.ID {
		t.Error("entries written out of order")
	}
	if entries[0].InputFeatures != first.InputFeatures {
		t.Errorf("features round-trip mismatch: got %+v", entries[0].InputFeatures)
	}
	if entries[1].CreditDecision != "denied" || entries[1].ProbabilityDefault != 0.42 {
		t.Errorf("result round-trip mismatch: got %+v", entries[1])
	}
}

func TestFileSinkAppendsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.jsonl")

	for i := 0; i < 2; i++ {
		sink, err := NewFileSink(path)
		if err != nil {
			t.Fatalf("NewFileSink: %v", err)
		}
		if err := sink.Append(context.Background(), testEntry()); err != nil {
			t.Fatalf("Append: %v", err)
		}
		sink.Close()
	}

	if got := len(readEntries(t, path)); got != 2 {
		t.Fatalf("got %d entries after reopen, want 2", got)
	}
}

func TestLoggerRecordsToPrimary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.jsonl")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer sink.Close()

	logger := New(sink, nil, zerolog.Nop())

	result := models.PredictionResult{Prediction: 0, ProbabilityDefault: 0.034271, CreditDecision: "approved"}
	logger.Record(testFeatures(), result)
	logger.Record(testFeatures(), result)
	logger.Wait()

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.ID == uuid.Nil {
			t.Error("entry has no ID")
		}
		if e.Timestamp.IsZero() {
			t.Error("entry has no timestamp")
		}
		if e.CreditDecision != "approved" || e.ProbabilityDefault != 0.034271 {
			t.Errorf("entry does not match recorded result: %+v", e)
		}
	}
}

func TestLoggerFallsBackWhenPrimaryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.jsonl")
	fallback, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer fallback.Close()

	logger := New(failingSink{}, fallback, zerolog.Nop())

	logger.Record(testFeatures(), models.PredictionResult{Prediction: 1, ProbabilityDefault: 0.42, CreditDecision: "denied"})
	logger.Wait()

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("got %d fallback entries, want 1", len(entries))
	}
	if entries[0].CreditDecision != "denied" {
		t.Errorf("fallback entry decision = %q, want denied", entries[0].CreditDecision)
	}
}

func TestLoggerSwallowsTotalFailure(t *testing.T) {
	logger := New(failingSink{}, nil, zerolog.Nop())

	// Must not panic or block: logging never fails the prediction response.
	logger.Record(testFeatures(), models.PredictionResult{Prediction: 0, ProbabilityDefault: 0.01, CreditDecision: "approved"})
	logger.Wait()
}
