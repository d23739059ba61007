package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domain "diary/internal/domain/event"
)

// newTestStore creates a JSONStore backed by a file in a temp dir.
func newTestStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return s, path
}

// seedFile writes raw JSON to a fresh backing file and opens a store on it.
func seedFile(t *testing.T, content string) (*JSONStore, string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s, err := NewJSONStore(path)
	return s, path, err
}

// TestJSONStore_AddAssignsIDs verifies max+1 id assignment, including reuse
// of a deleted max id.
func TestJSONStore_AddAssignsIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields id 1", func(t *testing.T) {
		s, _ := newTestStore(t)
		e, err := s.Add(ctx, "first", "High", "2024-01-01")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if e.ID != 1 {
			t.Errorf("id = %d, want 1", e.ID)
		}
	})

	t.Run("gaps are ignored, max wins", func(t *testing.T) {
		s, _, err := seedFile(t, `[
			{"id": 1, "title": "a", "importance": "Low", "date": "2024-01-01"},
			{"id": 3, "title": "b", "importance": "Low", "date": "2024-01-02"},
			{"id": 5, "title": "c", "importance": "Low", "date": "2024-01-03"}
		]`)
		if err != nil {
			t.Fatalf("open seeded store: %v", err)
		}
		e, err := s.Add(ctx, "d", "Low", "2024-01-04")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if e.ID != 6 {
			t.Errorf("id = %d, want 6", e.ID)
		}

		// Deleting the max id makes it available again.
		if removed, err := s.Delete(ctx, 6); err != nil || !removed {
			t.Fatalf("Delete(6) = %v, %v", removed, err)
		}
		e, err = s.Add(ctx, "e", "Low", "2024-01-05")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if e.ID != 6 {
			t.Errorf("id after delete = %d, want 6 (max-derived, not monotonic)", e.ID)
		}
	})
}

// TestJSONStore_RoundTrip verifies a reopened store sees the same collection.
func TestJSONStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	if _, err := s.Add(ctx, "Meeting", "High", "2024-06-01"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(ctx, "Gym", "Low", "2024-06-02"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if found, err := s.MarkCompleted(ctx, 2); err != nil || !found {
		t.Fatalf("MarkCompleted = %v, %v", found, err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	want, _ := s.ListAll(ctx)
	got, err := reopened.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("reopened store has %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestJSONStore_EditPartialUpdate verifies untouched fields keep their values.
func TestJSONStore_EditPartialUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	if _, err := s.Add(ctx, "Old", "High", "2024-06-01"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	title := "X"
	e, err := s.Edit(ctx, 1, domain.Update{Title: &title})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if e.Title != "X" {
		t.Errorf("title = %q, want %q", e.Title, "X")
	}
	if e.Importance != "High" || e.Date != "2024-06-01" {
		t.Errorf("untouched fields changed: %+v", e)
	}
}

// TestJSONStore_EditMiss verifies ErrNotFound for a nonexistent id.
func TestJSONStore_EditMiss(t *testing.T) {
	s, _ := newTestStore(t)
	title := "X"
	_, err := s.Edit(context.Background(), 42, domain.Update{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Edit miss error = %v, want ErrNotFound", err)
	}
}

// TestJSONStore_DeleteMiss verifies a miss leaves collection and file alone.
func TestJSONStore_DeleteMiss(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)
	if _, err := s.Add(ctx, "Keep", "Low", "2024-01-01"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	removed, err := s.Delete(ctx, 99)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed {
		t.Error("Delete(99) = true, want false")
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(before) != string(after) {
		t.Error("file changed after a delete miss")
	}
	events, _ := s.ListAll(ctx)
	if len(events) != 1 {
		t.Errorf("collection has %d events, want 1", len(events))
	}
}

// TestJSONStore_SortByDate verifies ascending order and stability for equal
// dates, and that the new order is persisted.
func TestJSONStore_SortByDate(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)
	s.Add(ctx, "a", "Low", "2024-05-01")
	s.Add(ctx, "b", "Low", "2023-01-10")
	s.Add(ctx, "c", "Low", "2024-05-01")

	if err := s.SortByDate(ctx); err != nil {
		t.Fatalf("SortByDate: %v", err)
	}

	assertOrder := func(t *testing.T, events []domain.Event) {
		t.Helper()
		wantIDs := []int{2, 1, 3}
		if len(events) != len(wantIDs) {
			t.Fatalf("got %d events, want %d", len(events), len(wantIDs))
		}
		for i, want := range wantIDs {
			if events[i].ID != want {
				t.Errorf("position %d has id %d, want %d", i, events[i].ID, want)
			}
		}
	}

	events, _ := s.ListAll(ctx)
	assertOrder(t, events)

	// The sort is permanent: a fresh store sees the same order.
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	events, _ = reopened.ListAll(ctx)
	assertOrder(t, events)
}

// TestJSONStore_MarkCompletedIdempotent verifies repeated completion.
func TestJSONStore_MarkCompletedIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Add(ctx, "task", "Low", "2024-01-01")

	for i := 0; i < 2; i++ {
		found, err := s.MarkCompleted(ctx, 1)
		if err != nil {
			t.Fatalf("MarkCompleted: %v", err)
		}
		if !found {
			t.Errorf("MarkCompleted round %d = false, want true", i+1)
		}
	}
	e, err := s.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !e.Completed {
		t.Error("Completed = false, want true")
	}
}

// TestJSONStore_EndToEnd walks the add → complete → list → delete scenario.
func TestJSONStore_EndToEnd(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	e, err := s.Add(ctx, "Meeting", "High", "2024-06-01")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if e.ID != 1 || e.Completed {
		t.Fatalf("Add = %+v, want id 1, completed false", e)
	}

	var raw []map[string]any
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("file has %d records, want 1", len(raw))
	}
	if completed, ok := raw[0]["completed"].(bool); !ok || completed {
		t.Errorf("file record completed = %v, want false", raw[0]["completed"])
	}

	if found, err := s.MarkCompleted(ctx, 1); err != nil || !found {
		t.Fatalf("MarkCompleted = %v, %v", found, err)
	}
	events, _ := s.ListAll(ctx)
	if len(events) != 1 || !events[0].Completed {
		t.Fatalf("ListAll after complete = %+v", events)
	}

	if removed, err := s.Delete(ctx, 1); err != nil || !removed {
		t.Fatalf("Delete = %v, %v", removed, err)
	}
	events, _ = s.ListAll(ctx)
	if len(events) != 0 {
		t.Errorf("ListAll after delete has %d events, want 0", len(events))
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	raw = nil
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("file has %d records after delete, want empty sequence", len(raw))
	}
}

// TestJSONStore_LoadMissingFile verifies an absent file is an empty store.
func TestJSONStore_LoadMissingFile(t *testing.T) {
	s, _ := newTestStore(t)
	events, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events from missing file, want 0", len(events))
	}
}

// TestJSONStore_LoadCorruptFile verifies unparseable JSON is ErrStorage.
func TestJSONStore_LoadCorruptFile(t *testing.T) {
	_, _, err := seedFile(t, `{not json`)
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("corrupt file error = %v, want ErrStorage", err)
	}
}

// TestJSONStore_LoadMalformedRecord verifies a bad record is ErrMalformedRecord.
func TestJSONStore_LoadMalformedRecord(t *testing.T) {
	_, _, err := seedFile(t, `[{"id": 1, "title": "no date", "importance": "High"}]`)
	if !errors.Is(err, domain.ErrMalformedRecord) {
		t.Errorf("malformed record error = %v, want ErrMalformedRecord", err)
	}
}

// TestJSONStore_GetByIDMiss verifies ErrNotFound for an unknown id.
func TestJSONStore_GetByIDMiss(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.GetByID(context.Background(), 7)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID miss error = %v, want ErrNotFound", err)
	}
}
