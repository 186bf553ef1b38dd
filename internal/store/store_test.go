package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/minutes"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(config.StoreConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNextOutputIndexMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		got, err := s.NextOutputIndex(ctx)
		if err != nil {
			t.Fatalf("NextOutputIndex() error = %v", err)
		}
		if got != want {
			t.Errorf("NextOutputIndex() = %d, want %d", got, want)
		}
	}
}

// Concurrent pipeline invocations draw indices from the same counter;
// the upsert must hand out each value exactly once.
func TestNextOutputIndexConcurrent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const workers = 2
	const perWorker = 20

	var wg sync.WaitGroup
	results := make(chan int, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				got, err := s.NextOutputIndex(ctx)
				if err != nil {
					t.Errorf("NextOutputIndex() error = %v", err)
					return
				}
				results <- got
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for got := range results {
		if got < 1 || got > workers*perWorker {
			t.Errorf("index %d out of range [1, %d]", got, workers*perWorker)
		}
		if seen[got] {
			t.Errorf("index %d handed out twice", got)
		}
		seen[got] = true
	}
	if len(seen) != workers*perWorker {
		t.Errorf("got %d distinct indices, want %d", len(seen), workers*perWorker)
	}
}

func TestSaveMeeting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := MeetingRecord{
		Title:           "weekly-sync.mp3",
		Date:            time.Now(),
		DurationSeconds: 1830,
		AudioPath:       "/data/in/weekly-sync.mp3",
		TranscriptPath:  "/data/out/output_1_formatted.md",
		MoMPath:         "/data/out/output_1_mom.md",
		SummaryText:     "## Meeting Summary\n\nWeekly sync.",
		Utterances: []transcript.Utterance{
			{Speaker: "Speaker 0", Text: "hello", Start: 0, End: 2},
			{Speaker: "Speaker 1", Text: "hi", Start: 2, End: 4},
			{Speaker: "Speaker 0", Text: "let's start", Start: 4, End: 6},
		},
		ActionItems: []minutes.ActionItem{
			{Title: "send the report", Description: "Alice will send the report", AssignedTo: "Alice", Priority: minutes.PriorityMedium},
		},
	}

	id, err := s.SaveMeeting(ctx, rec)
	if err != nil {
		t.Fatalf("SaveMeeting() error = %v", err)
	}
	if id == 0 {
		t.Fatal("SaveMeeting() returned zero ID")
	}

	var title string
	var duration float64
	if err := s.db.QueryRowContext(ctx, "SELECT title, duration_seconds FROM meetings WHERE id = ?", id).Scan(&title, &duration); err != nil {
		t.Fatalf("query meeting: %v", err)
	}
	if title != "weekly-sync.mp3" || duration != 1830 {
		t.Errorf("stored meeting = %q/%v", title, duration)
	}

	var participants int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM participants WHERE meeting_id = ?", id).Scan(&participants); err != nil {
		t.Fatal(err)
	}
	if participants != 2 {
		t.Errorf("participants = %d, want 2 unique speakers", participants)
	}

	var items int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM action_items WHERE meeting_id = ?", id).Scan(&items); err != nil {
		t.Fatal(err)
	}
	if items != 1 {
		t.Errorf("action items = %d, want 1", items)
	}
}

func TestOpenReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := config.StoreConfig{Enabled: true, Path: path}

	s1, err := Open(cfg)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, err := s1.NextOutputIndex(context.Background()); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	// Reopening must not re-apply migrations
	s2, err := Open(cfg)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer s2.Close()

	got, err := s2.NextOutputIndex(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("counter after reopen = %d, want 2", got)
	}
}
