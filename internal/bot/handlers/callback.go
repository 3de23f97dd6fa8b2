package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/bot/keyboards"
	"github.com/nutritrack/nutritrack/internal/bot/menus"
	"github.com/nutritrack/nutritrack/internal/bot/state"
	"github.com/nutritrack/nutritrack/internal/domain"
	"github.com/nutritrack/nutritrack/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warningf("Failed to answer callback query: %v", err)
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "main_menu":
		h.stateManager.SetUserState(userID, state.None)
		h.stateManager.ClearTempData(userID)
		return menus.SendMainMenu(h.api, chatID)
	case "log_food":
		return h.handleLogFood(chatID)
	case "today":
		return menus.SendTodayOverview(h.api, chatID, h.deps.NutritionSvc.TodaysLog())
	case "history":
		return menus.SendHistory(h.api, chatID, h.deps.NutritionSvc.Logs())
	case "weight":
		return menus.SendWeightMenu(h.api, chatID, h.deps.WeightSvc.Entries(), h.deps.WeightSvc.Goal())
	case "log_weight":
		return h.handleLogWeight(chatID, userID)
	case "set_goal":
		return h.handleSetGoal(chatID, userID)
	case "delete_weight_menu":
		return h.handleDeleteWeightMenu(chatID)
	case "sleep":
		return menus.SendSleepMenu(h.api, chatID, h.deps.SleepSvc.Entries(), h.deps.SleepSvc.AverageDuration())
	case "log_sleep":
		return h.handleLogSleep(chatID, userID)
	case "delete_sleep_menu":
		return h.handleDeleteSleepMenu(chatID)
	}

	// Parameterized callbacks: "<action>:<args>"
	switch {
	case strings.HasPrefix(query.Data, "meal:"):
		return h.handleMealChosen(chatID, userID, strings.TrimPrefix(query.Data, "meal:"))
	case strings.HasPrefix(query.Data, "edit_food:"):
		return h.handleEditFood(chatID, userID, strings.TrimPrefix(query.Data, "edit_food:"))
	case strings.HasPrefix(query.Data, "del_food:"):
		return h.handleDeleteFood(ctx, chatID, strings.TrimPrefix(query.Data, "del_food:"))
	case strings.HasPrefix(query.Data, "delete_weight:"):
		return h.handleDeleteWeight(ctx, chatID, strings.TrimPrefix(query.Data, "delete_weight:"))
	case strings.HasPrefix(query.Data, "delete_sleep:"):
		return h.handleDeleteSleep(ctx, chatID, strings.TrimPrefix(query.Data, "delete_sleep:"))
	}

	return h.handleUnknownCallback(chatID)
}

// handleLogFood shows the meal slot picker
func (h *CallbackHandler) handleLogFood(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Which meal are you logging?")
	msg.ReplyMarkup = keyboards.MealSlotMenu()
	_, err := h.api.Send(msg)
	return err
}

// handleMealChosen stores the chosen slot and asks for a description or photo
func (h *CallbackHandler) handleMealChosen(chatID, userID int64, slot string) error {
	meal := domain.MealType(slot)
	if !meal.Valid() {
		return h.handleUnknownCallback(chatID)
	}

	h.stateManager.SetUserState(userID, state.WaitingForFood)
	h.stateManager.SetTempData(userID, state.TempMealSlot, slot)

	text := `📷 Send a photo of your meal, or describe it in text (for example: "a bowl of oatmeal with banana").

I will estimate the nutrients and add the items to ` + slot + `.`
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", "main_menu"),
		),
	)
	_, err := h.api.Send(msg)
	return err
}

// handleEditFood starts the edit flow for one of today's items
func (h *CallbackHandler) handleEditFood(chatID, userID int64, args string) error {
	parts := strings.SplitN(args, ":", 2)
	if len(parts) != 2 || !domain.MealType(parts[0]).Valid() {
		return h.handleUnknownCallback(chatID)
	}

	h.stateManager.SetUserState(userID, state.WaitingForFoodEdit)
	h.stateManager.SetTempData(userID, state.TempMealSlot, parts[0])
	h.stateManager.SetTempData(userID, state.TempFoodID, parts[1])

	msg := tgbotapi.NewMessage(chatID, `Send the updated values as:

name calories protein carbs fats

For example: "Scrambled eggs 210 14 2 16"`)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", "today"),
		),
	)
	_, err := h.api.Send(msg)
	return err
}

// handleDeleteFood deletes one of today's items and re-renders the overview
func (h *CallbackHandler) handleDeleteFood(ctx context.Context, chatID int64, args string) error {
	parts := strings.SplitN(args, ":", 2)
	if len(parts) != 2 {
		return h.handleUnknownCallback(chatID)
	}

	if err := h.deps.NutritionSvc.DeleteFoodItem(ctx, domain.MealType(parts[0]), parts[1]); err != nil {
		logger.Errorf("Failed to delete food item: %v", err)
	}
	return menus.SendTodayOverview(h.api, chatID, h.deps.NutritionSvc.TodaysLog())
}

// handleLogWeight asks for today's weight
func (h *CallbackHandler) handleLogWeight(chatID, userID int64) error {
	h.stateManager.SetUserState(userID, state.WaitingForWeight)

	msg := tgbotapi.NewMessage(chatID, "Enter today's weight in kg (for example: 72.5). Logging again today replaces the earlier entry.")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", "weight"),
		),
	)
	_, err := h.api.Send(msg)
	return err
}

// handleSetGoal asks for the goal weights
func (h *CallbackHandler) handleSetGoal(chatID, userID int64) error {
	h.stateManager.SetUserState(userID, state.WaitingForGoal)

	msg := tgbotapi.NewMessage(chatID, `Enter your goal as "starting target" in kg (for example: "80 70"). Editing an existing goal keeps its original start date.`)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", "weight"),
		),
	)
	_, err := h.api.Send(msg)
	return err
}

// handleDeleteWeightMenu lists weight entries for deletion
func (h *CallbackHandler) handleDeleteWeightMenu(chatID int64) error {
	entries := h.deps.WeightSvc.Entries()
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}

	msg := tgbotapi.NewMessage(chatID, "Pick an entry to delete:")
	msg.ReplyMarkup = keyboards.DeleteEntryMenu("delete_weight", dates, "weight")
	_, err := h.api.Send(msg)
	return err
}

// handleDeleteWeight deletes a weight entry and re-renders the weight menu
func (h *CallbackHandler) handleDeleteWeight(ctx context.Context, chatID int64, date string) error {
	if err := h.deps.WeightSvc.DeleteEntry(ctx, date); err != nil {
		logger.Errorf("Failed to delete weight entry: %v", err)
	}
	return menus.SendWeightMenu(h.api, chatID, h.deps.WeightSvc.Entries(), h.deps.WeightSvc.Goal())
}

// handleLogSleep asks for last night's bed and wake times
func (h *CallbackHandler) handleLogSleep(chatID, userID int64) error {
	h.stateManager.SetUserState(userID, state.WaitingForSleep)

	msg := tgbotapi.NewMessage(chatID, `Enter bed time and wake time as "HH:MM HH:MM" (for example: "23:00 07:00"). The entry is logged against today's date.`)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", "sleep"),
		),
	)
	_, err := h.api.Send(msg)
	return err
}

// handleDeleteSleepMenu lists sleep entries for deletion
func (h *CallbackHandler) handleDeleteSleepMenu(chatID int64) error {
	entries := h.deps.SleepSvc.Entries()
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}

	msg := tgbotapi.NewMessage(chatID, "Pick an entry to delete:")
	msg.ReplyMarkup = keyboards.DeleteEntryMenu("delete_sleep", dates, "sleep")
	_, err := h.api.Send(msg)
	return err
}

// handleDeleteSleep deletes a sleep entry and re-renders the sleep menu
func (h *CallbackHandler) handleDeleteSleep(ctx context.Context, chatID int64, date string) error {
	if err := h.deps.SleepSvc.DeleteEntry(ctx, date); err != nil {
		logger.Errorf("Failed to delete sleep entry: %v", err)
	}
	return menus.SendSleepMenu(h.api, chatID, h.deps.SleepSvc.Entries(), h.deps.SleepSvc.AverageDuration())
}

// handleUnknownCallback handles unknown callback data
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "That action is no longer available.")
	_, err := h.api.Send(msg)
	return err
}
