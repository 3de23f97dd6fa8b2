package domain

import "context"

// NutritionService owns the daily nutrition logs
type NutritionService interface {
	AddFoodItems(ctx context.Context, meal MealType, items []FoodItem) (DailyLog, error)
	UpdateFoodItem(ctx context.Context, meal MealType, item FoodItem) error
	DeleteFoodItem(ctx context.Context, meal MealType, id string) error
	Logs() []DailyLog
	TodaysLog() DailyLog
	BeginEstimation(meal MealType) error
	EndEstimation(meal MealType)
}

// WeightService owns the weight entries and the optional goal
type WeightService interface {
	AddEntry(ctx context.Context, weight float64) error
	DeleteEntry(ctx context.Context, date string) error
	SetGoal(ctx context.Context, startingWeight, targetWeight float64) error
	Entries() []WeightEntry
	Goal() *WeightGoal
	LatestEntry() (WeightEntry, bool)
}

// SleepService owns the sleep entries
type SleepService interface {
	AddEntry(ctx context.Context, bedTime, wakeTime string) (SleepEntry, error)
	DeleteEntry(ctx context.Context, date string) error
	Entries() []SleepEntry
	TodaysEntry() (SleepEntry, bool)
	AverageDuration() float64
}

// FoodEstimator turns a free-text description or a meal photo into
// candidate food items with estimated nutrient values
type FoodEstimator interface {
	EstimateFromText(ctx context.Context, description string) ([]FoodItem, error)
	EstimateFromImage(ctx context.Context, imageData []byte, mimeType string) ([]FoodItem, error)
}
