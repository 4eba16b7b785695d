package predlog_test

import (
	"context"
	"testing"

	"credscore/internal/predlog"
	"credscore/internal/testutil"
)

func TestDatabaseSinkAppend(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	sink := predlog.NewDatabaseSink(database)
	ctx := context.Background()

	entry := testutil.NewTestEntry(t, 0.034271, "approved")
	if err := sink.Append(ctx, entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := database.ListPredictions(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPredictions: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.ID != entry.ID {
		t.Errorf("ID = %s, want %s", got.ID, entry.ID)
	}
	if got.InputFeatures != entry.InputFeatures {
		t.Errorf("features mismatch: got %+v, want %+v", got.InputFeatures, entry.InputFeatures)
	}
	if got.ProbabilityDefault != entry.ProbabilityDefault || got.CreditDecision != entry.CreditDecision {
		t.Errorf("result mismatch: got %+v", got)
	}
}
