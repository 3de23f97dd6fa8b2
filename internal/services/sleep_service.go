package services

import (
	"context"
	"sort"
	"sync"

	"github.com/nutritrack/nutritrack/internal/domain"
	apperrors "github.com/nutritrack/nutritrack/internal/errors"
	"github.com/nutritrack/nutritrack/internal/logger"
	"github.com/nutritrack/nutritrack/internal/storage"
	"github.com/nutritrack/nutritrack/internal/utils"
)

const sleepLogKey = "sleep_log"

// SleepService owns the sleep entry history, sorted descending by wake date,
// one entry per date. Durations are always derived from the clock times.
type SleepService struct {
	store *storage.Store

	mu      sync.Mutex
	entries []domain.SleepEntry
}

// NewSleepService loads the persisted sleep log. Missing or corrupt data
// degrades to an empty history.
func NewSleepService(ctx context.Context, store *storage.Store) *SleepService {
	s := &SleepService{store: store}

	var entries []domain.SleepEntry
	found, err := store.Load(ctx, sleepLogKey, &entries)
	if err != nil {
		logger.Error("Failed to load sleep log, starting empty",
			apperrors.NewStorageReadError(err, sleepLogKey).LogFields()...)
	} else if found {
		s.entries = entries
		sort.SliceStable(s.entries, func(i, j int) bool {
			return s.entries[i].Date > s.entries[j].Date
		})
	}

	return s
}

// AddEntry logs last night's sleep against today's date, replacing any
// earlier entry for today. Duration is computed from the clock times, with
// a wake time before the bed time treated as crossing midnight.
func (s *SleepService) AddEntry(ctx context.Context, bedTime, wakeTime string) (domain.SleepEntry, error) {
	duration, err := utils.SleepDuration(bedTime, wakeTime)
	if err != nil {
		return domain.SleepEntry{}, apperrors.NewValidationError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.SleepEntry{
		Date:     utils.Today(),
		BedTime:  bedTime,
		WakeTime: wakeTime,
		Duration: duration,
	}

	remaining := s.entries[:0:0]
	for _, e := range s.entries {
		if e.Date != entry.Date {
			remaining = append(remaining, e)
		}
	}
	s.entries = append(remaining, entry)
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Date > s.entries[j].Date
	})

	s.persist(ctx)
	return entry, nil
}

// DeleteEntry removes the entry for the given date; no-op if absent.
func (s *SleepService) DeleteEntry(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.entries[:0:0]
	for _, e := range s.entries {
		if e.Date != date {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(s.entries) {
		return nil
	}
	s.entries = remaining

	s.persist(ctx)
	return nil
}

// Entries returns the sleep history, most recent first.
func (s *SleepService) Entries() []domain.SleepEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SleepEntry{}, s.entries...)
}

// TodaysEntry returns the entry whose wake date is today, if any.
func (s *SleepService) TodaysEntry() (domain.SleepEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := utils.Today()
	for _, e := range s.entries {
		if e.Date == today {
			return e, true
		}
	}
	return domain.SleepEntry{}, false
}

// AverageDuration returns the mean duration over the whole stored history,
// not a rolling window. Zero entries average to zero.
func (s *SleepService) AverageDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range s.entries {
		total += e.Duration
	}
	return total / float64(len(s.entries))
}

// persist saves the whole history. Write failures are logged and swallowed.
// Callers must hold mu.
func (s *SleepService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, sleepLogKey, s.entries); err != nil {
		logger.Error("Failed to persist sleep log",
			apperrors.NewStorageWriteError(err, sleepLogKey).LogFields()...)
	}
}
