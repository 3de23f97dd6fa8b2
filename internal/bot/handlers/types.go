package handlers

import (
	"github.com/nutritrack/nutritrack/internal/domain"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	NutritionSvc domain.NutritionService
	WeightSvc    domain.WeightService
	SleepSvc     domain.SleepService
	Estimator    domain.FoodEstimator
}
