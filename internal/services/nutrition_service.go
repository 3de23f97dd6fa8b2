package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nutritrack/nutritrack/internal/domain"
	apperrors "github.com/nutritrack/nutritrack/internal/errors"
	"github.com/nutritrack/nutritrack/internal/logger"
	"github.com/nutritrack/nutritrack/internal/storage"
	"github.com/nutritrack/nutritrack/internal/utils"
)

const nutritionLogKey = "nutrition_logs"

// NutritionService owns the daily nutrition logs. Logs are ordered most
// recent first and all mutations apply to today's log only; past days are a
// read-only ledger. Totals are recomputed synchronously after every mutation.
type NutritionService struct {
	store *storage.Store

	mu      sync.Mutex
	logs    []domain.DailyLog
	pending map[domain.MealType]bool
}

// NewNutritionService loads the persisted log history. Missing or corrupt
// data degrades to an empty history, never to a failure.
func NewNutritionService(ctx context.Context, store *storage.Store) *NutritionService {
	s := &NutritionService{
		store:   store,
		pending: make(map[domain.MealType]bool),
	}

	var logs []domain.DailyLog
	found, err := store.Load(ctx, nutritionLogKey, &logs)
	if err != nil {
		logger.Error("Failed to load nutrition logs, starting empty",
			apperrors.NewStorageReadError(err, nutritionLogKey).LogFields()...)
	} else if found {
		s.logs = logs
	}

	// Older records may predate a meal slot; keep every slot addressable.
	for i := range s.logs {
		if s.logs[i].Meals == nil {
			s.logs[i].Meals = domain.NewMeals()
		}
		for _, mt := range domain.MealTypes() {
			if s.logs[i].Meals[mt] == nil {
				s.logs[i].Meals[mt] = []domain.FoodItem{}
			}
		}
	}

	return s
}

// AddFoodItems assigns fresh ids to the proposed items, appends them to the
// given meal slot of today's log (creating the log if this is the first food
// logged today) and returns the updated log.
func (s *NutritionService) AddFoodItems(ctx context.Context, meal domain.MealType, items []domain.FoodItem) (domain.DailyLog, error) {
	if !meal.Valid() {
		return domain.DailyLog{}, apperrors.NewValidationError("unknown meal slot: " + string(meal))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := utils.Today()
	idx := s.findLog(today)
	if idx < 0 {
		// New days go to the front, history stays descending by date.
		s.logs = append([]domain.DailyLog{domain.NewDailyLog(today)}, s.logs...)
		idx = 0
	}

	log := &s.logs[idx]
	for _, item := range items {
		item.ID = uuid.NewString()
		log.Meals[meal] = append(log.Meals[meal], item)
	}
	log.ComputeTotals()

	s.persist(ctx)
	return cloneLog(*log), nil
}

// UpdateFoodItem replaces the entry matching the item's id in today's meal
// slot, preserving its position. A missing log or id is a silent no-op: the
// reference may be stale, which is not an error.
func (s *NutritionService) UpdateFoodItem(ctx context.Context, meal domain.MealType, item domain.FoodItem) error {
	if !meal.Valid() {
		return apperrors.NewValidationError("unknown meal slot: " + string(meal))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLog(utils.Today())
	if idx < 0 {
		return nil
	}

	log := &s.logs[idx]
	for i, existing := range log.Meals[meal] {
		if existing.ID == item.ID {
			log.Meals[meal][i] = item
			log.ComputeTotals()
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// DeleteFoodItem removes the entry with the given id from today's meal slot.
// A missing log or id is a silent no-op.
func (s *NutritionService) DeleteFoodItem(ctx context.Context, meal domain.MealType, id string) error {
	if !meal.Valid() {
		return apperrors.NewValidationError("unknown meal slot: " + string(meal))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLog(utils.Today())
	if idx < 0 {
		return nil
	}

	log := &s.logs[idx]
	for i, existing := range log.Meals[meal] {
		if existing.ID == id {
			log.Meals[meal] = append(log.Meals[meal][:i], log.Meals[meal][i+1:]...)
			log.ComputeTotals()
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// Logs returns the full history, most recent first.
func (s *NutritionService) Logs() []domain.DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]domain.DailyLog, len(s.logs))
	for i, l := range s.logs {
		logs[i] = cloneLog(l)
	}
	return logs
}

// TodaysLog returns today's log, or an empty log with zero totals when
// nothing has been logged today yet.
func (s *NutritionService) TodaysLog() domain.DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := utils.Today()
	if idx := s.findLog(today); idx >= 0 {
		return cloneLog(s.logs[idx])
	}
	return domain.NewDailyLog(today)
}

// BeginEstimation marks the meal slot as having an estimation call in
// flight. At most one estimation may be pending per slot; further attempts
// are rejected until EndEstimation is called.
func (s *NutritionService) BeginEstimation(meal domain.MealType) error {
	if !meal.Valid() {
		return apperrors.NewValidationError("unknown meal slot: " + string(meal))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[meal] {
		return apperrors.ErrEstimationPending
	}
	s.pending[meal] = true
	return nil
}

// EndEstimation returns the meal slot to the idle state.
func (s *NutritionService) EndEstimation(meal domain.MealType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, meal)
}

// findLog returns the index of the log for date, or -1. Callers must hold mu.
func (s *NutritionService) findLog(date string) int {
	for i := range s.logs {
		if s.logs[i].Date == date {
			return i
		}
	}
	return -1
}

// persist saves the whole history. Write failures are logged and swallowed:
// the in-memory mutation stands for the rest of the session. Callers must
// hold mu.
func (s *NutritionService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, nutritionLogKey, s.logs); err != nil {
		logger.Error("Failed to persist nutrition logs",
			apperrors.NewStorageWriteError(err, nutritionLogKey).LogFields()...)
	}
}

// cloneLog deep-copies a daily log so callers cannot mutate owned state.
func cloneLog(l domain.DailyLog) domain.DailyLog {
	meals := make(domain.Meals, len(l.Meals))
	for mt, items := range l.Meals {
		meals[mt] = append([]domain.FoodItem{}, items...)
	}
	l.Meals = meals
	return l
}
