package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nutritrack/nutritrack/internal/domain"
	apperrors "github.com/nutritrack/nutritrack/internal/errors"
	"github.com/nutritrack/nutritrack/internal/services"
)

func TestFreshStoreHasZeroTotals(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))

	log := svc.TodaysLog()
	if log.Totals != (domain.NutrientTotals{}) {
		t.Fatalf("expected zero totals, got %+v", log.Totals)
	}
	for _, mt := range domain.MealTypes() {
		if len(log.Meals[mt]) != 0 {
			t.Fatalf("expected empty %s slot", mt)
		}
	}
	if len(svc.Logs()) != 0 {
		t.Fatal("expected empty history")
	}
}

func TestAddFoodItemsAssignsIDAndComputesTotals(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))

	log, err := svc.AddFoodItems(context.Background(), domain.MealBreakfast, []domain.FoodItem{
		{Name: "Egg", Calories: 70, Protein: 6, Carbs: 1, Fats: 5},
	})
	if err != nil {
		t.Fatalf("add food items: %v", err)
	}

	if len(log.Meals[domain.MealBreakfast]) != 1 {
		t.Fatalf("expected one breakfast entry, got %d", len(log.Meals[domain.MealBreakfast]))
	}
	if log.Meals[domain.MealBreakfast][0].ID == "" {
		t.Fatal("expected a generated id")
	}

	want := domain.NutrientTotals{Calories: 70, Protein: 6, Carbs: 1, Fats: 5}
	if log.Totals != want {
		t.Fatalf("expected totals %+v, got %+v", want, log.Totals)
	}
}

func TestAddFoodItemsTwiceDoublesEntriesWithDistinctIDs(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))
	ctx := context.Background()

	items := []domain.FoodItem{{Name: "Egg", Calories: 70, Protein: 6, Carbs: 1, Fats: 5}}
	if _, err := svc.AddFoodItems(ctx, domain.MealBreakfast, items); err != nil {
		t.Fatalf("first add: %v", err)
	}
	log, err := svc.AddFoodItems(ctx, domain.MealBreakfast, items)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	entries := log.Meals[domain.MealBreakfast]
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if entries[0].ID == entries[1].ID {
		t.Fatal("expected distinct ids for repeated adds")
	}

	want := domain.NutrientTotals{Calories: 140, Protein: 12, Carbs: 2, Fats: 10}
	if log.Totals != want {
		t.Fatalf("expected doubled totals %+v, got %+v", want, log.Totals)
	}
}

func TestTotalsTrackEveryMutation(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))
	ctx := context.Background()

	log, err := svc.AddFoodItems(ctx, domain.MealLunch, []domain.FoodItem{
		{Name: "Rice", Calories: 200, Protein: 4, Carbs: 45, Fats: 0.5},
		{Name: "Chicken", Calories: 165, Protein: 31, Carbs: 0, Fats: 3.5},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Update the rice entry in place.
	rice := log.Meals[domain.MealLunch][0]
	rice.Calories = 250
	rice.Carbs = 55
	if err := svc.UpdateFoodItem(ctx, domain.MealLunch, rice); err != nil {
		t.Fatalf("update: %v", err)
	}

	updated := svc.TodaysLog()
	if got := updated.Meals[domain.MealLunch][0]; got.Calories != 250 || got.Name != "Rice" {
		t.Fatalf("expected updated rice entry in place, got %+v", got)
	}
	want := domain.NutrientTotals{Calories: 415, Protein: 35, Carbs: 55, Fats: 4}
	if updated.Totals != want {
		t.Fatalf("expected totals %+v after update, got %+v", want, updated.Totals)
	}

	// Delete the chicken entry.
	chicken := updated.Meals[domain.MealLunch][1]
	if err := svc.DeleteFoodItem(ctx, domain.MealLunch, chicken.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	final := svc.TodaysLog()
	if len(final.Meals[domain.MealLunch]) != 1 {
		t.Fatalf("expected one entry after delete, got %d", len(final.Meals[domain.MealLunch]))
	}
	for _, item := range final.Meals[domain.MealLunch] {
		if item.ID == chicken.ID {
			t.Fatal("deleted id still present")
		}
	}
	want = domain.NutrientTotals{Calories: 250, Protein: 4, Carbs: 55, Fats: 0.5}
	if final.Totals != want {
		t.Fatalf("expected totals %+v after delete, got %+v", want, final.Totals)
	}
}

func TestStaleReferencesAreSilentNoOps(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))
	ctx := context.Background()

	before, err := svc.AddFoodItems(ctx, domain.MealDinner, []domain.FoodItem{
		{Name: "Soup", Calories: 120, Protein: 5, Carbs: 12, Fats: 4},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteFoodItem(ctx, domain.MealDinner, "no-such-id"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
	if err := svc.UpdateFoodItem(ctx, domain.MealDinner, domain.FoodItem{ID: "no-such-id", Name: "Ghost"}); err != nil {
		t.Fatalf("expected no-op update, got %v", err)
	}
	// Wrong slot for an existing id is also a stale reference.
	if err := svc.DeleteFoodItem(ctx, domain.MealSnacks, before.Meals[domain.MealDinner][0].ID); err != nil {
		t.Fatalf("expected no-op cross-slot delete, got %v", err)
	}

	after := svc.TodaysLog()
	if after.Totals != before.Totals {
		t.Fatalf("expected totals unchanged, got %+v", after.Totals)
	}
	if len(after.Meals[domain.MealDinner]) != 1 {
		t.Fatal("expected dinner entry to survive stale mutations")
	}
}

func TestUnknownMealSlotIsRejected(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))

	if _, err := svc.AddFoodItems(context.Background(), domain.MealType("Brunch"), nil); err == nil {
		t.Fatal("expected validation error for unknown meal slot")
	}
}

func TestLogsSurviveRestart(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	svc := services.NewNutritionService(ctx, store)
	if _, err := svc.AddFoodItems(ctx, domain.MealSnacks, []domain.FoodItem{
		{Name: "Apple", Calories: 95, Protein: 0.5, Carbs: 25, Fats: 0.3},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded := services.NewNutritionService(ctx, store)
	log := reloaded.TodaysLog()
	if len(log.Meals[domain.MealSnacks]) != 1 {
		t.Fatalf("expected snack entry after reload, got %d", len(log.Meals[domain.MealSnacks]))
	}
	want := domain.NutrientTotals{Calories: 95, Protein: 0.5, Carbs: 25, Fats: 0.3}
	if log.Totals != want {
		t.Fatalf("expected totals %+v after reload, got %+v", want, log.Totals)
	}
}

func TestCorruptRecordFallsBackToEmptyHistory(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	// Simulate a corrupt persisted record: the stored value does not decode
	// into the log history shape.
	if err := store.Save(ctx, "nutrition_logs", "garbage"); err != nil {
		t.Fatalf("save corrupt record: %v", err)
	}

	svc := services.NewNutritionService(ctx, store)
	if len(svc.Logs()) != 0 {
		t.Fatal("expected empty history after corrupt load")
	}
	if svc.TodaysLog().Totals != (domain.NutrientTotals{}) {
		t.Fatal("expected zero totals after corrupt load")
	}

	// The store must be writable again after the fallback.
	if _, err := svc.AddFoodItems(ctx, domain.MealBreakfast, []domain.FoodItem{
		{Name: "Toast", Calories: 80, Protein: 3, Carbs: 14, Fats: 1},
	}); err != nil {
		t.Fatalf("add after corrupt load: %v", err)
	}
}

func TestEstimationGuardAllowsOneInFlightPerSlot(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))

	if err := svc.BeginEstimation(domain.MealBreakfast); err != nil {
		t.Fatalf("first begin: %v", err)
	}
	if err := svc.BeginEstimation(domain.MealBreakfast); !errors.Is(err, apperrors.ErrEstimationPending) {
		t.Fatalf("expected pending error, got %v", err)
	}
	// Other slots are independent.
	if err := svc.BeginEstimation(domain.MealLunch); err != nil {
		t.Fatalf("other slot begin: %v", err)
	}

	svc.EndEstimation(domain.MealBreakfast)
	if err := svc.BeginEstimation(domain.MealBreakfast); err != nil {
		t.Fatalf("begin after end: %v", err)
	}
}

func TestReturnedLogsAreCopies(t *testing.T) {
	t.Parallel()
	svc := services.NewNutritionService(context.Background(), newTestStore(t))
	ctx := context.Background()

	if _, err := svc.AddFoodItems(ctx, domain.MealBreakfast, []domain.FoodItem{
		{Name: "Egg", Calories: 70, Protein: 6, Carbs: 1, Fats: 5},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	log := svc.TodaysLog()
	log.Meals[domain.MealBreakfast][0].Calories = 9999

	if got := svc.TodaysLog().Meals[domain.MealBreakfast][0].Calories; got != 70 {
		t.Fatalf("caller mutation leaked into owned state: %v", got)
	}
}
