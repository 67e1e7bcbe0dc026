package persist

import (
	"context"
	"testing"
	"time"

	"github.com/Bhavna2020/ippcored/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := model.Printer{
		ID:            5,
		Name:          "officejet",
		Location:      "3rd floor",
		State:         model.StateIdle,
		AcceptingJobs: true,
		StartTime:     time.Now().Truncate(time.Second),
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := s.Load(ctx, 5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected a saved snapshot")
	}
	if got.Name != "officejet" || got.Location != "3rd floor" || !got.AcceptingJobs {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestLoadMissingPrinterReturnsNotOK(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Load(context.Background(), 999)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a printer with no saved snapshot")
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, model.Printer{ID: 1, Location: "old"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, model.Printer{ID: 1, Location: "new"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _, err := s.Load(ctx, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Location != "new" {
		t.Fatalf("Location = %q, want %q", got.Location, "new")
	}
}

func TestLoadAllReturnsEverySavedPrinter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, model.Printer{ID: 1, Name: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, model.Printer{ID: 2, Name: "b"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d printers, want 2", len(all))
	}
}
