package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/bot/menus"
	"github.com/nutritrack/nutritrack/internal/bot/state"
	"github.com/nutritrack/nutritrack/internal/domain"
)

// TextHandler handles text messages
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userState := h.stateManager.GetUserState(message.From.ID)

	switch userState {
	case state.WaitingForFood:
		return h.handleFoodDescription(ctx, message)
	case state.WaitingForFoodEdit:
		return h.handleFoodEdit(ctx, message)
	case state.WaitingForWeight:
		return h.handleWeight(ctx, message)
	case state.WaitingForGoal:
		return h.handleGoal(ctx, message)
	case state.WaitingForSleep:
		return h.handleSleep(ctx, message)
	default:
		return h.handleDefaultText(message.Chat.ID)
	}
}

// handleFoodDescription estimates nutrients from a text description and
// logs the result into the chosen meal slot
func (h *TextHandler) handleFoodDescription(ctx context.Context, message *tgbotapi.Message) error {
	slot, ok := h.stateManager.GetTempData(message.From.ID, state.TempMealSlot)
	if !ok {
		return h.handleDefaultText(message.Chat.ID)
	}

	description := strings.TrimSpace(message.Text)
	if description == "" {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please describe your food, for example: \"2 eggs and toast\".")
		_, err := h.api.Send(msg)
		return err
	}

	return logEstimatedFood(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, message.From.ID,
		domain.MealType(slot),
		func(ctx context.Context) ([]domain.FoodItem, error) {
			return h.deps.Estimator.EstimateFromText(ctx, description)
		})
}

// handleFoodEdit replaces the values of one of today's items. Input format:
// "name calories protein carbs fats", name may contain spaces.
func (h *TextHandler) handleFoodEdit(ctx context.Context, message *tgbotapi.Message) error {
	slot, okSlot := h.stateManager.GetTempData(message.From.ID, state.TempMealSlot)
	id, okID := h.stateManager.GetTempData(message.From.ID, state.TempFoodID)
	if !okSlot || !okID {
		return h.handleDefaultText(message.Chat.ID)
	}

	fields := strings.Fields(message.Text)
	if len(fields) < 5 {
		msg := tgbotapi.NewMessage(message.Chat.ID, `Please use the format: name calories protein carbs fats (for example: "Scrambled eggs 210 14 2 16")`)
		_, err := h.api.Send(msg)
		return err
	}

	numbers := make([]float64, 4)
	for i, field := range fields[len(fields)-4:] {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil || value < 0 {
			msg := tgbotapi.NewMessage(message.Chat.ID, "The last four values must be non-negative numbers: calories protein carbs fats.")
			_, sendErr := h.api.Send(msg)
			return sendErr
		}
		numbers[i] = value
	}

	item := domain.FoodItem{
		ID:       id,
		Name:     strings.Join(fields[:len(fields)-4], " "),
		Calories: numbers[0],
		Protein:  numbers[1],
		Carbs:    numbers[2],
		Fats:     numbers[3],
	}

	if err := h.deps.NutritionSvc.UpdateFoodItem(ctx, domain.MealType(slot), item); err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Something went wrong while updating the item. Please try again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	h.stateManager.SetUserState(message.From.ID, state.None)
	h.stateManager.ClearTempData(message.From.ID)

	return menus.SendTodayOverview(h.api, message.Chat.ID, h.deps.NutritionSvc.TodaysLog())
}

// handleWeight logs today's weight
func (h *TextHandler) handleWeight(ctx context.Context, message *tgbotapi.Message) error {
	weight, err := strconv.ParseFloat(strings.TrimSpace(message.Text), 64)
	if err != nil || weight <= 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please enter a positive number (for example: 72.5)")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	if err := h.deps.WeightSvc.AddEntry(ctx, weight); err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Something went wrong while saving your weight. Please try again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	confirm := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("✅ Weight %.1f kg logged for today", weight))
	if _, err := h.api.Send(confirm); err != nil {
		return err
	}

	h.stateManager.SetUserState(message.From.ID, state.None)
	return menus.SendWeightMenu(h.api, message.Chat.ID, h.deps.WeightSvc.Entries(), h.deps.WeightSvc.Goal())
}

// handleGoal sets or updates the weight goal from "starting target" input
func (h *TextHandler) handleGoal(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.Text)
	if len(fields) != 2 {
		msg := tgbotapi.NewMessage(message.Chat.ID, `Please enter two numbers: "starting target" (for example: "80 70")`)
		_, err := h.api.Send(msg)
		return err
	}

	starting, err1 := strconv.ParseFloat(fields[0], 64)
	target, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil || starting <= 0 || target <= 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Both weights must be positive numbers.")
		_, err := h.api.Send(msg)
		return err
	}

	if err := h.deps.WeightSvc.SetGoal(ctx, starting, target); err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Something went wrong while saving your goal. Please try again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	h.stateManager.SetUserState(message.From.ID, state.None)
	return menus.SendWeightMenu(h.api, message.Chat.ID, h.deps.WeightSvc.Entries(), h.deps.WeightSvc.Goal())
}

// handleSleep logs last night's sleep from "HH:MM HH:MM" input
func (h *TextHandler) handleSleep(ctx context.Context, message *tgbotapi.Message) error {
	input := strings.ReplaceAll(message.Text, "-", " ")
	fields := strings.Fields(input)
	if len(fields) != 2 {
		msg := tgbotapi.NewMessage(message.Chat.ID, `Please enter bed time and wake time as "HH:MM HH:MM" (for example: "23:00 07:00")`)
		_, err := h.api.Send(msg)
		return err
	}

	entry, err := h.deps.SleepSvc.AddEntry(ctx, fields[0], fields[1])
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Invalid times. Use the 24-hour HH:MM format (for example: \"23:00 07:00\")")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	confirm := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("✅ Logged %.1f hours of sleep", entry.Duration))
	if _, err := h.api.Send(confirm); err != nil {
		return err
	}

	h.stateManager.SetUserState(message.From.ID, state.None)
	return menus.SendSleepMenu(h.api, message.Chat.ID, h.deps.SleepSvc.Entries(), h.deps.SleepSvc.AverageDuration())
}

// handleDefaultText handles text outside of any flow
func (h *TextHandler) handleDefaultText(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Use the menu to log food, weight or sleep. /start shows it again.")
	_, err := h.api.Send(msg)
	return err
}
