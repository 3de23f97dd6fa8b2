package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/bot/menus"
	"github.com/nutritrack/nutritrack/internal/bot/state"
	"github.com/nutritrack/nutritrack/internal/domain"
	apperrors "github.com/nutritrack/nutritrack/internal/errors"
	"github.com/nutritrack/nutritrack/internal/logger"
)

// logEstimatedFood runs an estimation for a meal slot and logs the result.
// At most one estimation can be in flight per slot; a failed or empty
// estimation leaves the logs untouched and the slot back in the idle state.
func logEstimatedFood(
	ctx context.Context,
	api *tgbotapi.BotAPI,
	deps Dependencies,
	stateManager state.StateManager,
	chatID, userID int64,
	meal domain.MealType,
	estimate func(ctx context.Context) ([]domain.FoodItem, error),
) error {
	if err := deps.NutritionSvc.BeginEstimation(meal); err != nil {
		if errors.Is(err, apperrors.ErrEstimationPending) {
			msg := tgbotapi.NewMessage(chatID, "I'm still analyzing your previous "+string(meal)+" entry. Please wait for it to finish.")
			_, sendErr := api.Send(msg)
			return sendErr
		}
		return err
	}
	defer deps.NutritionSvc.EndEstimation(meal)

	processingMsg := tgbotapi.NewMessage(chatID, "Analyzing your food... 🔎")
	if _, err := api.Send(processingMsg); err != nil {
		return err
	}

	items, err := estimate(ctx)
	if err != nil {
		logger.Warn("Food estimation failed", "error", err.Error(), "meal", string(meal))
		msg := tgbotapi.NewMessage(chatID, "Sorry, I couldn't analyze that. Please try again with a clearer description or photo.")
		_, sendErr := api.Send(msg)
		return sendErr
	}

	log, err := deps.NutritionSvc.AddFoodItems(ctx, meal, items)
	if err != nil {
		logger.Errorf("Failed to add food items: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Something went wrong while saving your food. Please try again.")
		_, sendErr := api.Send(msg)
		return sendErr
	}

	stateManager.SetUserState(userID, state.None)
	stateManager.ClearTempData(userID)

	return menus.SendTodayOverview(api, chatID, log)
}
