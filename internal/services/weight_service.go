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

const weightLogKey = "weight_log"

// WeightService owns the weight entry history and the optional weight goal.
// Entries are kept sorted descending by date, one entry per date.
type WeightService struct {
	store *storage.Store

	mu      sync.Mutex
	entries []domain.WeightEntry
	goal    *domain.WeightGoal
}

// NewWeightService loads the persisted weight record. Missing or corrupt
// data degrades to an empty record.
func NewWeightService(ctx context.Context, store *storage.Store) *WeightService {
	s := &WeightService{store: store}

	var record domain.WeightRecord
	found, err := store.Load(ctx, weightLogKey, &record)
	if err != nil {
		logger.Error("Failed to load weight log, starting empty",
			apperrors.NewStorageReadError(err, weightLogKey).LogFields()...)
	} else if found {
		s.entries = record.Entries
		s.goal = record.Goal
		sortEntriesByDateDesc(s.entries)
	}

	return s
}

// AddEntry logs today's weight, replacing any earlier entry for today.
func (s *WeightService) AddEntry(ctx context.Context, weight float64) error {
	if weight <= 0 {
		return apperrors.NewValidationError("weight must be a positive number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := utils.Today()
	s.entries = removeWeightEntry(s.entries, today)
	s.entries = append(s.entries, domain.WeightEntry{Date: today, Weight: weight})
	sortEntriesByDateDesc(s.entries)

	s.persist(ctx)
	return nil
}

// DeleteEntry removes the entry for the given date; no-op if absent.
func (s *WeightService) DeleteEntry(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := removeWeightEntry(s.entries, date)
	if len(remaining) == len(s.entries) {
		return nil
	}
	s.entries = remaining

	s.persist(ctx)
	return nil
}

// SetGoal sets or replaces the weight goal. The start date is fixed when
// the goal is first created; editing an existing goal keeps it.
func (s *WeightService) SetGoal(ctx context.Context, startingWeight, targetWeight float64) error {
	if startingWeight <= 0 || targetWeight <= 0 {
		return apperrors.NewValidationError("goal weights must be positive numbers")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	startDate := utils.Today()
	if s.goal != nil {
		startDate = s.goal.StartDate
	}
	s.goal = &domain.WeightGoal{
		StartingWeight: startingWeight,
		TargetWeight:   targetWeight,
		StartDate:      startDate,
	}

	s.persist(ctx)
	return nil
}

// Entries returns the weight history, most recent first.
func (s *WeightService) Entries() []domain.WeightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WeightEntry{}, s.entries...)
}

// Goal returns the current goal, or nil when none has been set.
func (s *WeightService) Goal() *domain.WeightGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goal == nil {
		return nil
	}
	goal := *s.goal
	return &goal
}

// LatestEntry returns the entry with the maximum date.
func (s *WeightService) LatestEntry() (domain.WeightEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return domain.WeightEntry{}, false
	}
	return s.entries[0], true
}

// persist saves the entries and goal together under one key. Write failures
// are logged and swallowed. Callers must hold mu.
func (s *WeightService) persist(ctx context.Context) {
	record := domain.WeightRecord{Entries: s.entries, Goal: s.goal}
	if err := s.store.Save(ctx, weightLogKey, record); err != nil {
		logger.Error("Failed to persist weight log",
			apperrors.NewStorageWriteError(err, weightLogKey).LogFields()...)
	}
}

// GoalProgress reports how far the current weight has travelled from the
// goal's starting weight toward the target, as a percentage clamped to
// [0, 100]. Direction is inferred from the goal itself; movement in the
// wrong direction reports 0 rather than a negative value.
func GoalProgress(goal domain.WeightGoal, current float64) float64 {
	losing := goal.TargetWeight < goal.StartingWeight

	totalRange := goal.StartingWeight - goal.TargetWeight
	if totalRange < 0 {
		totalRange = -totalRange
	}
	if totalRange == 0 {
		return 0
	}

	progressMade := current - goal.StartingWeight
	if losing {
		progressMade = goal.StartingWeight - current
	}
	if progressMade < 0 {
		return 0
	}

	progress := progressMade / totalRange * 100
	if progress > 100 {
		return 100
	}
	return progress
}

func removeWeightEntry(entries []domain.WeightEntry, date string) []domain.WeightEntry {
	remaining := entries[:0:0]
	for _, e := range entries {
		if e.Date != date {
			remaining = append(remaining, e)
		}
	}
	return remaining
}

// sortEntriesByDateDesc orders entries most recent first. ISO dates sort
// correctly as strings.
func sortEntriesByDateDesc(entries []domain.WeightEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
