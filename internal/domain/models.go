package domain

// MealType is one of the four fixed meal categories partitioning a daily log.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnacks    MealType = "Snacks"
)

// MealTypes returns all meal slots in display order.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}
}

// Valid reports whether m is one of the four known meal slots.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// FoodItem is a single logged food with estimated nutrient values.
// ID is assigned by the nutrition service when the item is added to a log;
// items coming from the estimator carry an empty ID.
type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Meals groups food items by meal slot. Order within a slot is insertion order.
type Meals map[MealType][]FoodItem

// NewMeals returns a Meals map with an empty slice for every slot.
func NewMeals() Meals {
	meals := make(Meals, len(MealTypes()))
	for _, mt := range MealTypes() {
		meals[mt] = []FoodItem{}
	}
	return meals
}

// NutrientTotals is the element-wise sum of nutrients across a daily log.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add accumulates a food item's nutrients into the totals.
func (t *NutrientTotals) Add(item FoodItem) {
	t.Calories += item.Calories
	t.Protein += item.Protein
	t.Carbs += item.Carbs
	t.Fats += item.Fats
}

// DailyLog holds all food entries and their totals for one calendar date.
// Totals are recomputed after every mutation and never drift from the items.
type DailyLog struct {
	Date   string         `json:"date"` // YYYY-MM-DD
	Meals  Meals          `json:"meals"`
	Totals NutrientTotals `json:"totals"`
}

// NewDailyLog returns an empty log for the given date with zero totals.
func NewDailyLog(date string) DailyLog {
	return DailyLog{Date: date, Meals: NewMeals()}
}

// ComputeTotals recalculates the nutrient totals from the meal contents.
func (l *DailyLog) ComputeTotals() {
	var totals NutrientTotals
	for _, mt := range MealTypes() {
		for _, item := range l.Meals[mt] {
			totals.Add(item)
		}
	}
	l.Totals = totals
}

// WeightEntry is one weight measurement, at most one per date.
type WeightEntry struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight"`
}

// WeightGoal is the user's declared weight goal. StartDate is set when the
// goal is first created and survives later edits.
type WeightGoal struct {
	StartingWeight float64 `json:"startingWeight"`
	TargetWeight   float64 `json:"targetWeight"`
	StartDate      string  `json:"startDate"` // YYYY-MM-DD
}

// SleepEntry is one night of sleep, keyed by the wake date. Duration is
// derived from BedTime/WakeTime and recomputed whenever the entry is logged.
type SleepEntry struct {
	Date     string  `json:"date"`     // YYYY-MM-DD, date of waking up
	BedTime  string  `json:"bedTime"`  // HH:MM
	WakeTime string  `json:"wakeTime"` // HH:MM
	Duration float64 `json:"duration"` // hours
}

// WeightRecord is the persisted shape of the weight dataset: the entry
// history plus the optional goal, stored together under one key.
type WeightRecord struct {
	Entries []WeightEntry `json:"entries"`
	Goal    *WeightGoal   `json:"goal"`
}
