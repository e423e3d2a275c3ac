package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T, maxEntries int) *DB {
	t.Helper()
	d := NewDB(maxEntries)
	if err := d.Open(filepath.Join(t.TempDir(), "store.db")); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	go d.Start()
	t.Cleanup(func() {
		close(d.RequestChan)
		d.Close()
	})
	return d
}

func awaitResponse(t *testing.T, d *DB, op EventType) Response {
	t.Helper()
	select {
	case resp := <-d.ResponseChan:
		if resp.Op != op {
			t.Fatalf("expected op %d, got %d", op, resp.Op)
		}
		if resp.Err != nil {
			t.Fatalf("store error: %v", resp.Err)
		}
		return resp
	case <-time.After(5 * time.Second):
		t.Fatal("no store response")
	}
	return Response{}
}

func TestHistory_RecordAndFetch(t *testing.T) {
	d := openTestDB(t, 0)

	d.RequestChan <- Request{Op: RecordQuery, Query: "report 2024"}
	d.RequestChan <- Request{Op: RecordQuery, Query: "::img vacation"}
	d.RequestChan <- Request{Op: FetchHistory}
	resp := awaitResponse(t, d, FetchHistory)

	if len(resp.History) != 2 {
		t.Fatalf("expected 2 history entries, got %v", resp.History)
	}
}

func TestHistory_ShortQueriesDropped(t *testing.T) {
	d := openTestDB(t, 0)

	d.RequestChan <- Request{Op: RecordQuery, Query: "a"}
	d.RequestChan <- Request{Op: RecordQuery, Query: ""}
	d.RequestChan <- Request{Op: FetchHistory}
	resp := awaitResponse(t, d, FetchHistory)

	if len(resp.History) != 0 {
		t.Errorf("single-character queries must not be recorded: %v", resp.History)
	}
}

func TestHistory_ResubmitBumpsNotDuplicates(t *testing.T) {
	d := openTestDB(t, 0)

	d.RequestChan <- Request{Op: RecordQuery, Query: "notes"}
	d.RequestChan <- Request{Op: RecordQuery, Query: "report"}
	d.RequestChan <- Request{Op: RecordQuery, Query: "notes"}
	d.RequestChan <- Request{Op: FetchHistory}
	resp := awaitResponse(t, d, FetchHistory)

	if len(resp.History) != 2 {
		t.Fatalf("resubmission must not duplicate: %v", resp.History)
	}
}

func TestHistory_Trimmed(t *testing.T) {
	d := openTestDB(t, 3)

	for _, q := range []string{"q-one", "q-two", "q-three", "q-four", "q-five"} {
		d.RequestChan <- Request{Op: RecordQuery, Query: q}
	}
	d.RequestChan <- Request{Op: FetchHistory, Limit: 10}
	resp := awaitResponse(t, d, FetchHistory)

	if len(resp.History) != 3 {
		t.Errorf("expected history trimmed to 3, got %v", resp.History)
	}
}

func TestHistory_Clear(t *testing.T) {
	d := openTestDB(t, 0)

	d.RequestChan <- Request{Op: RecordQuery, Query: "doomed"}
	d.RequestChan <- Request{Op: ClearHistory}
	resp := awaitResponse(t, d, FetchHistory)

	if len(resp.History) != 0 {
		t.Errorf("history not cleared: %v", resp.History)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	d := openTestDB(t, 0)

	d.RequestChan <- Request{Op: SaveSetting, Key: "caseMode", Value: "sensitive"}
	resp := awaitResponse(t, d, FetchSettings)

	if resp.Settings["caseMode"] != "sensitive" {
		t.Errorf("setting not persisted: %v", resp.Settings)
	}

	// Overwrite upserts.
	d.RequestChan <- Request{Op: SaveSetting, Key: "caseMode", Value: "auto"}
	resp = awaitResponse(t, d, FetchSettings)
	if resp.Settings["caseMode"] != "auto" {
		t.Errorf("setting not overwritten: %v", resp.Settings)
	}
}
