package services_test

import (
	"context"
	"testing"

	"github.com/nutritrack/nutritrack/internal/domain"
	"github.com/nutritrack/nutritrack/internal/services"
)

func TestSleepAddEntryComputesDuration(t *testing.T) {
	t.Parallel()
	svc := services.NewSleepService(context.Background(), newTestStore(t))

	entry, err := svc.AddEntry(context.Background(), "23:00", "07:00")
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if entry.Duration != 8.0 {
		t.Fatalf("expected 8.0 hours across midnight, got %v", entry.Duration)
	}
	if entry.BedTime != "23:00" || entry.WakeTime != "07:00" {
		t.Fatalf("expected clock times to be stored, got %+v", entry)
	}
}

func TestSleepAddEntryRejectsBadClockTimes(t *testing.T) {
	t.Parallel()
	svc := services.NewSleepService(context.Background(), newTestStore(t))
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, "25:00", "07:00"); err == nil {
		t.Fatal("expected error for out-of-range bed time")
	}
	if _, err := svc.AddEntry(ctx, "23:00", "seven"); err == nil {
		t.Fatal("expected error for unparseable wake time")
	}
	if len(svc.Entries()) != 0 {
		t.Fatal("rejected entries must not be stored")
	}
}

func TestSleepAddEntryReplacesSameDate(t *testing.T) {
	t.Parallel()
	svc := services.NewSleepService(context.Background(), newTestStore(t))
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, "23:00", "07:00"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.AddEntry(ctx, "22:30", "06:30"); err != nil {
		t.Fatalf("second add: %v", err)
	}

	entries := svc.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one entry per date, got %d", len(entries))
	}
	if entries[0].BedTime != "22:30" {
		t.Fatalf("expected latest entry to win, got %+v", entries[0])
	}

	today, ok := svc.TodaysEntry()
	if !ok || today.WakeTime != "06:30" {
		t.Fatalf("expected today's entry, got ok=%v %+v", ok, today)
	}
}

func TestSleepEntriesSortedMostRecentFirst(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	seed := []domain.SleepEntry{
		{Date: "2025-08-10", BedTime: "23:00", WakeTime: "07:00", Duration: 8.0},
		{Date: "2025-08-20", BedTime: "00:30", WakeTime: "06:30", Duration: 6.0},
		{Date: "2025-08-15", BedTime: "22:00", WakeTime: "05:00", Duration: 7.0},
	}
	if err := store.Save(ctx, "sleep_log", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := services.NewSleepService(ctx, store)
	entries := svc.Entries()
	wantDates := []string{"2025-08-20", "2025-08-15", "2025-08-10"}
	if len(entries) != len(wantDates) {
		t.Fatalf("expected %d entries, got %d", len(wantDates), len(entries))
	}
	for i, want := range wantDates {
		if entries[i].Date != want {
			t.Fatalf("expected %s at index %d, got %s", want, i, entries[i].Date)
		}
	}
}

func TestSleepDeleteEntry(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	seed := []domain.SleepEntry{
		{Date: "2025-08-20", BedTime: "23:00", WakeTime: "07:00", Duration: 8.0},
		{Date: "2025-08-19", BedTime: "23:30", WakeTime: "06:30", Duration: 7.0},
	}
	if err := store.Save(ctx, "sleep_log", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := services.NewSleepService(ctx, store)
	if err := svc.DeleteEntry(ctx, "2025-08-19"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteEntry(ctx, "1999-01-01"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}

	entries := svc.Entries()
	if len(entries) != 1 || entries[0].Date != "2025-08-20" {
		t.Fatalf("expected only 2025-08-20 to remain, got %+v", entries)
	}
}

func TestAverageDurationCoversWholeHistory(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	empty := services.NewSleepService(ctx, newTestStore(t))
	if got := empty.AverageDuration(); got != 0 {
		t.Fatalf("expected 0 average for empty history, got %v", got)
	}

	seed := []domain.SleepEntry{
		{Date: "2025-08-20", BedTime: "23:00", WakeTime: "07:00", Duration: 8.0},
		{Date: "2025-08-19", BedTime: "01:00", WakeTime: "07:00", Duration: 6.0},
	}
	if err := store.Save(ctx, "sleep_log", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := services.NewSleepService(ctx, store)
	if got := svc.AverageDuration(); got != 7.0 {
		t.Fatalf("expected 7.0 average, got %v", got)
	}
}

func TestSleepTodaysEntryAbsent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	seed := []domain.SleepEntry{
		{Date: "2025-08-20", BedTime: "23:00", WakeTime: "07:00", Duration: 8.0},
	}
	if err := store.Save(ctx, "sleep_log", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := services.NewSleepService(ctx, store)
	if _, ok := svc.TodaysEntry(); ok {
		t.Fatal("expected no entry for today")
	}
}

func TestSleepLogSurvivesRestart(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	svc := services.NewSleepService(ctx, store)
	if _, err := svc.AddEntry(ctx, "23:30", "06:15"); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded := services.NewSleepService(ctx, store)
	entries := reloaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one entry after reload, got %d", len(entries))
	}
	if entries[0].Duration != 6.75 {
		t.Fatalf("expected stored duration 6.75, got %v", entries[0].Duration)
	}
}
