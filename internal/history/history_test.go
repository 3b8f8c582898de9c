package history_test

import (
	"path/filepath"
	"testing"

	"cstamp/internal/history"
)

// openTestDB creates a fresh history database in a temp dir.
func openTestDB(t *testing.T) *history.DB {
	t.Helper()
	db, err := history.NewDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func closeTestDB(t *testing.T, db *history.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

func TestRecordAndListStamps(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	stamps := []history.Stamp{
		{File: "version.h", Namespace: "build", Variable: "kVersion", OldValue: "3", NewValue: "4", AppliedAt: 100},
		{File: "version.h", Namespace: "", Variable: "counter", OldValue: "41", NewValue: "42", AppliedAt: 200},
	}
	if err := db.RecordStamps(stamps); err != nil {
		t.Fatalf("RecordStamps failed: %v", err)
	}

	listed, err := db.ListStamps(0)
	if err != nil {
		t.Fatalf("ListStamps failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 stamps, got %d", len(listed))
	}

	// Newest first.
	if listed[0].Variable != "counter" {
		t.Errorf("expected counter first, got %s", listed[0].Variable)
	}
	if listed[1].Variable != "kVersion" || listed[1].Namespace != "build" {
		t.Errorf("unexpected second stamp: %+v", listed[1])
	}
	if listed[1].OldValue != "3" || listed[1].NewValue != "4" || listed[1].AppliedAt != 100 {
		t.Errorf("stamp fields not round-tripped: %+v", listed[1])
	}
}

func TestListStampsLimit(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	for i := 0; i < 5; i++ {
		err := db.RecordStamps([]history.Stamp{
			{File: "v.h", Variable: "x", OldValue: "0", NewValue: "1", AppliedAt: int64(i + 1)},
		})
		if err != nil {
			t.Fatalf("RecordStamps failed: %v", err)
		}
	}

	listed, err := db.ListStamps(2)
	if err != nil {
		t.Fatalf("ListStamps failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 stamps, got %d", len(listed))
	}
	if listed[0].AppliedAt != 5 {
		t.Errorf("expected the newest stamp first, got applied_at %d", listed[0].AppliedAt)
	}
}

func TestRecordStampsFillsTimestamp(t *testing.T) {
	db := openTestDB(t)
	defer closeTestDB(t, db)

	err := db.RecordStamps([]history.Stamp{
		{File: "v.h", Variable: "y", OldValue: "1", NewValue: "2"},
	})
	if err != nil {
		t.Fatalf("RecordStamps failed: %v", err)
	}

	listed, err := db.ListStamps(1)
	if err != nil {
		t.Fatalf("ListStamps failed: %v", err)
	}
	if len(listed) != 1 || listed[0].AppliedAt == 0 {
		t.Errorf("expected a filled timestamp, got %+v", listed)
	}
}
